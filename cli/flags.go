package cli

import (
	"github.com/abiiranathan/goflag"
)

// Commands are the subcommand handlers. They read the effective
// configuration after flags have been applied.
type Commands struct {
	RunServer func()
	Browse    func()
	InitDB    func()
	Ping      func()
}

func DefineFlags(config *Config, cmds Commands) *goflag.Context {
	// Flags required by multiple subcomands
	driverFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "driver",
		ShortName: "d",
		Value:     &config.Driver,
		Usage:     "The database driver: mysql or sqlite3",
		Required:  false,
		Validator: nil,
	}

	dsnFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "dsn",
		ShortName: "s",
		Value:     &config.DSN,
		Usage:     "The data source name. Defaults to the mysql section of the config",
		Required:  false,
		Validator: nil,
	}

	// Create flag context.
	ctx := goflag.NewContext()

	// Run server
	ctx.AddSubCommand("runserver", "Start an Http server for browsing records", cmds.RunServer).
		AddFlag(goflag.FlagInt, "port", "p", &config.Port, "The port to run the server on", false,
			goflag.Min(1), goflag.Max(65535)).
		AddFlagPtr(&driverFlag).
		AddFlagPtr(&dsnFlag)

	ctx.AddSubCommand("browse", "Browse records from the terminal", cmds.Browse).
		AddFlag(goflag.FlagString, "api", "a", &config.APIURL, "Base URL of a running server", false)

	ctx.AddSubCommand("initdb", "Create the record tables and import record files", cmds.InitDB).
		AddFlag(goflag.FlagString, "seed", "f", &config.SeedDir, "Directory of JSON record files to import", false).
		AddFlag(goflag.FlagInt, "workers", "w", &config.Workers, "No of record files decoded at once", false,
			goflag.Min(1), goflag.Max(64)).
		AddFlagPtr(&driverFlag).
		AddFlagPtr(&dsnFlag)

	ctx.AddSubCommand("ping", "Check that the database is reachable", cmds.Ping).
		AddFlagPtr(&driverFlag).
		AddFlagPtr(&dsnFlag)

	return ctx
}
