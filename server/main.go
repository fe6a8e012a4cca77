package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jbvmio/scripthub"
	"github.com/jbvmio/scripthub/catalog"
	"github.com/jbvmio/scripthub/runner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	configFile string
	buildTime  string
	commitHash string
)

func main() {
	var flags scripthub.Config
	pf := pflag.NewFlagSet(`scripthub`, pflag.ExitOnError)
	pf.StringVarP(&configFile, "config", "c", "", "Path of Config File to Use (.yaml or .toml).")
	pf.StringVar(&flags.Addr, "addr", "", "Address to Listen on.")
	pf.StringVarP(&flags.Port, "port", "p", scripthub.DefaultPort, "Port to Listen on.")
	pf.StringVar(&flags.RootDir, "root", "", "Root Directory Script Paths are Resolved Against. Defaults to the Executable's Directory.")
	pf.StringVar(&flags.OptionsDir, "options", scripthub.DefaultOptionsDir, "Directory of Script Descriptor Files.")
	pf.StringVar(&flags.PublicDir, "public", scripthub.DefaultPublicDir, "Directory of Static Assets.")
	pf.StringVar(&flags.WorkDir, "workdir", "", "Working Directory of Spawned Scripts. Defaults to the Server's Working Directory.")
	pf.StringVar(&flags.LogLevel, "log-level", "info", "Log Level.")
	pf.BoolVar(&flags.ValidateDescriptors, "validate", false, "Validate Descriptors Against the Descriptor Schema.")
	pf.StringVar(&flags.CertFile, "cert", "", "Filepath to Server Certificate. Enables TLS together with --key.")
	pf.StringVar(&flags.KeyFile, "key", "", "Filepath to Server Key.")
	pf.Parse(os.Args[1:])

	cfg := &scripthub.Config{}
	var cfgErr error
	if configFile != "" {
		cfg, cfgErr = scripthub.GetConfig(configFile)
	}
	mergeFlags(pf, cfg, &flags)

	L := scripthub.NewLogger(cfg.LogLevel, os.Stdout)
	defer L.Sync()
	L.Info("Starting ...", zap.String(`Version`, buildTime), zap.String(`Commit`, commitHash))
	if cfgErr != nil {
		L.Fatal("error retrieving config", zap.String(`config`, configFile), zap.Error(cfgErr))
	}

	cwd, err := scripthub.GetCWD()
	if err != nil {
		L.Fatal("error retrieving cwd", zap.Error(err))
	}
	cfg.ApplyDefaults(cwd)
	L.Info("root directory", zap.String("directory", cfg.RootDir))
	L.Info("options directory", zap.String("directory", cfg.OptionsDir))
	L.Info("public directory", zap.String("directory", cfg.PublicDir))
	if cfg.WorkDir != "" {
		L.Info("script working directory", zap.String("directory", cfg.WorkDir))
	}

	scripts, err := catalog.New(cfg.OptionsDir, cfg.ValidateDescriptors, L)
	if err != nil {
		L.Fatal("error creating catalog", zap.Error(err))
	}
	run := runner.New(cfg.RootDir, L, runner.WithInterpreters(cfg.Interpreters), runner.WithWorkDir(cfg.WorkDir))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	api := NewAPI(cfg, scripts, run, L)
	api.Start()

	<-sigChan

	api.Stop()
	L.Info("Stopped.")
}

// mergeFlags copies every flag the user set explicitly over cfg, and fills the
// remaining unset fields from the flag defaults.
func mergeFlags(pf *pflag.FlagSet, cfg, flags *scripthub.Config) {
	set := func(name string, dst *string, val string) {
		if pf.Changed(name) || *dst == "" {
			*dst = val
		}
	}
	set("addr", &cfg.Addr, flags.Addr)
	set("port", &cfg.Port, flags.Port)
	set("root", &cfg.RootDir, flags.RootDir)
	set("options", &cfg.OptionsDir, flags.OptionsDir)
	set("public", &cfg.PublicDir, flags.PublicDir)
	set("workdir", &cfg.WorkDir, flags.WorkDir)
	set("log-level", &cfg.LogLevel, flags.LogLevel)
	set("cert", &cfg.CertFile, flags.CertFile)
	set("key", &cfg.KeyFile, flags.KeyFile)
	if pf.Changed("validate") {
		cfg.ValidateDescriptors = flags.ValidateDescriptors
	}
}
