package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Split bool
	Store bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("GDSER_DEBUG_PARSE")
	d.Split = boolEnv("GDSER_DEBUG_SPLIT")
	d.Store = boolEnv("GDSER_DEBUG_STORE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Split() bool {
	return d.Split
}
func Store() bool {
	return d.Store
}
