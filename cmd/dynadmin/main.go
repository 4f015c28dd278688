/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], defaultDeps()))
}
