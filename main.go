package main

import "github.com/shandysiswandi/gonav/internal/app"

func main() {
	app.Execute()
}
