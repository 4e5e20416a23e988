package main

import (
	"github.com/WalletPulse/WalletPulse-Backend/api"
	"github.com/WalletPulse/WalletPulse-Backend/utils"
)

func main() {
	server := api.NewServer(utils.EnvPath)
	server.Start()
}
