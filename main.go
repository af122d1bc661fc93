package main

import (
	_ "eyewear.GO/api/admin"
	_ "eyewear.GO/api/catalog"
	_ "eyewear.GO/api/graphql"
	_ "eyewear.GO/cron/jobs"
	_ "eyewear.GO/custom"
	_ "eyewear.GO/html"

	"eyewear.GO/cmd"
	"eyewear.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
