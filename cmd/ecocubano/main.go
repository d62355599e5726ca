package main

import (
	"ecocubano/cmd/handlers"
	"ecocubano/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
