package main

import (
	"github.com/victortedesco/inventory-management/config"
	"github.com/victortedesco/inventory-management/internal/api"
)

func main() {
	//load configuration
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
