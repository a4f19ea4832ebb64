// cmd/readprep/main.go
package main

import (
	"readprep/internal/app"
	"readprep/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
