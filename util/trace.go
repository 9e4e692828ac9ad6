package util

import (
	"log"
	"time"
)

// Trace 简单的耗时打点：defer util.Trace("op")()
func Trace(name string) func() {
	start := time.Now()
	return func() {
		log.Printf("%s took %v", name, time.Since(start))
	}
}
