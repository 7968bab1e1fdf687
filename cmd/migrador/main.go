/*
Copyright © 2024 Clevesson Mendonça
*/

package main

import "log"

func main() {
	if err := Execute(); err != nil {
		log.Fatal(err)
	}
}
