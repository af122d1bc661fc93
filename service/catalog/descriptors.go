package catalog

import "eyewear.GO/core/catalog"

const (
	KindFrames      = "frames"
	KindLenses      = "lenses"
	KindAccessories = "accessories"
)

const defaultPageSize = 6

// Technology ids of the lens technology master list.
const (
	TechBlueLight       = "a1b2c3d4-1111-2222-3333-444455556666"
	TechPhotochromic    = "a1b2c3d4-2222-3333-4444-555566667777"
	TechUVProtection    = "a1b2c3d4-3333-4444-5555-666677778888"
	TechAntiScratch     = "a1b2c3d4-4444-5555-6666-777788889999"
	TechImpactResistant = "a1b2c3d4-5555-6666-7777-888899990000"
	TechUltraLight      = "a1b2c3d4-6666-7777-8888-999900001111"
	TechAntiFatigue     = "a1b2c3d4-7777-8888-9999-000011112222"
	TechNightVision     = "a1b2c3d4-8888-9999-0000-111122223333"
)

// TechnologyNames maps technology ids to the English names searched by the
// lenses catalog.
var TechnologyNames = map[string]string{
	TechBlueLight:       "Blue Light Filter",
	TechPhotochromic:    "Photochromic",
	TechUVProtection:    "UV Protection",
	TechAntiScratch:     "Anti-Scratch",
	TechImpactResistant: "Impact Resistant",
	TechUltraLight:      "Ultra Light",
	TechAntiFatigue:     "Anti-Fatigue",
	TechNightVision:     "Night Vision",
}

// Descriptors returns the storefront catalogs in menu order.
func Descriptors() []*catalog.Descriptor {
	return []*catalog.Descriptor{frames(), lenses(), accessories()}
}

func frames() *catalog.Descriptor {
	return &catalog.Descriptor{
		Kind:  KindFrames,
		Label: "Gọng kính",
		Dimensions: []catalog.Dimension{
			{
				Key:   "shape",
				Label: "Kiểu dáng",
				Options: []catalog.Option{
					{ID: "CAT_EYE", Label: "Mắt mèo"},
					{ID: "ROUND", Label: "Tròn"},
					{ID: "OVAL", Label: "Oval"},
					{ID: "RECTANGLE", Label: "Vuông/Chữ nhật"},
					{ID: "POLYGON", Label: "Đa giác"},
				},
			},
			{
				Key:   "material",
				Label: "Chất liệu",
				Options: []catalog.Option{
					{ID: "PLASTIC", Label: "Nhựa cứng"},
					{ID: "METAL", Label: "Kim loại"},
					{ID: "PLASTIC_METAL", Label: "Nhựa pha kim loại"},
					{ID: "TITANIUM", Label: "Titan"},
				},
			},
			{
				Key:   "width",
				Label: "Độ rộng",
				Options: []catalog.Option{
					{ID: "NARROW", Label: "Hẹp"},
					{ID: "MEDIUM", Label: "Vừa"},
					{ID: "WIDE", Label: "Rộng"},
				},
				Measure: "total_width_mm",
				Buckets: []catalog.Bucket{
					{ID: "NARROW", Min: 0, Max: 135},
					{ID: "MEDIUM", Min: 136, Max: 142},
					{ID: "WIDE", Min: 143, Max: 999},
				},
			},
		},
		DefaultPageSize:   defaultPageSize,
		DefaultPriceRange: catalog.PriceRange{Min: 0, Max: 5000000},
	}
}

func lenses() *catalog.Descriptor {
	return &catalog.Descriptor{
		Kind:  KindLenses,
		Label: "Tròng kính",
		Dimensions: []catalog.Dimension{
			{
				Key:   "lens_type",
				Label: "Loại tròng",
				Options: []catalog.Option{
					{ID: "SINGLE_VISION", Label: "Đơn tròng"},
					{ID: "BIFOCAL", Label: "Đa tròng"},
					{ID: "PROGRESSIVE", Label: "Lũy tiến"},
				},
			},
			{
				Key:   "technology",
				Label: "Công nghệ",
				Options: []catalog.Option{
					{ID: TechBlueLight, Label: "Chống ánh sáng xanh"},
					{ID: TechPhotochromic, Label: "Đổi màu"},
					{ID: TechUVProtection, Label: "Chống UV"},
					{ID: TechAntiScratch, Label: "Chống xước"},
					{ID: TechImpactResistant, Label: "Chống vỡ"},
					{ID: TechUltraLight, Label: "Siêu nhẹ"},
					{ID: TechAntiFatigue, Label: "Chống mỏi"},
					{ID: TechNightVision, Label: "Nhìn đêm"},
				},
			},
			{
				Key:   "refractive_index",
				Label: "Chiết suất",
				Options: []catalog.Option{
					{ID: "1.56", Label: "1.56"},
					{ID: "1.59", Label: "1.59"},
					{ID: "1.6", Label: "1.60"},
					{ID: "1.67", Label: "1.67"},
					{ID: "1.74", Label: "1.74"},
				},
			},
		},
		SearchFields:      []string{"technology_names"},
		DefaultPageSize:   defaultPageSize,
		DefaultPriceRange: catalog.PriceRange{Min: 0, Max: 5000000},
	}
}

func accessories() *catalog.Descriptor {
	return &catalog.Descriptor{
		Kind:  KindAccessories,
		Label: "Phụ kiện",
		Dimensions: []catalog.Dimension{
			{
				Key:   "accessory_type",
				Label: "Loại phụ kiện",
				Options: []catalog.Option{
					{ID: "CASE", Label: "Hộp kính"},
					{ID: "STRAP", Label: "Dây đeo kính"},
					{ID: "PARTS", Label: "Phụ kiện thay thế"},
					{ID: "CLEANING", Label: "Vệ sinh kính"},
					{ID: "BAG", Label: "Túi đựng"},
				},
			},
		},
		SearchFields:      []string{"description"},
		DefaultPageSize:   defaultPageSize,
		DefaultPriceRange: catalog.PriceRange{Min: 0, Max: 500000},
	}
}
