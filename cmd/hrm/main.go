package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	goversion "github.com/caarlos0/go-version"
	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-hr-console/internal/config"
	hrlog "github.com/jrsteele09/go-hr-console/internal/log"
)

var (
	version   = "0.1.0"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

const (
	exitOK = iota
	exitError
	exitUsage
	exitLoginRequired
)

func main() {
	// a missing .env is normal; the environment still applies
	_ = godotenv.Load()

	c := config.New()
	log.Logger = hrlog.New(c.GetEnv(), c.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, c, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, c config.Config, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			code = exitError
		}
	}()

	if len(args) == 0 {
		displayAppname(stdout, c.GetAppName())
		usage(stderr)
		return exitUsage
	}
	if args[0] == "version" {
		fmt.Fprintln(stdout, buildVersion().String())
		return exitOK
	}

	a, err := newApp(ctx, c, stdout, stderr)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return exitError
	}
	defer a.close()

	return a.dispatch(ctx, args)
}

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("hrm", "Command line console for the HR management API", ""),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: hrm <command> [options]

Session:
  login -email <email> -password <password> -tenant <code>
  logout
  whoami

Resources:
  employees    list|get|create|update|delete
  departments  list|get|create|update|delete
  designations list|get|create|update|delete
  roles        list

  version

Run "hrm <resource> <action> -h" for the options of an action.
`)
}
