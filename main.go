package main

import "github.com/devlance/marketplace-api/cmd"

//	@title			Devlance Marketplace API
//	@version		1.0
//	@description	Role-based freelance marketplace: projects, applications, tasks, ledger.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cmd.Execute()
}
