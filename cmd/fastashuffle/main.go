// cmd/fastashuffle/main.go
package main

import (
	"fastashuffle/internal/app"
	"fastashuffle/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
