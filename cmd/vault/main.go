package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pass-vault/internal/client"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Set via -ldflags "-X main.buildVersion=... -X main.buildDate=... -X main.buildCommit=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var app client.Client = client.NewApp(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	err := app.Run(ctx, os.Args[1:])
	stop()

	if err != nil {
		os.Exit(1)
	}
}
