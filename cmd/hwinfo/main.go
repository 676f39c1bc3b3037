package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gysosin/hwinfo/internal/collectors"
	"github.com/gysosin/hwinfo/internal/config"
	"github.com/gysosin/hwinfo/internal/dispatch"
	"github.com/gysosin/hwinfo/internal/logging"
	"github.com/gysosin/hwinfo/internal/publish"
	"github.com/kardianos/service"
)

// program implements service.Interface for running as a Windows service.
type program struct {
	addr    string
	handler http.Handler
	srv     *http.Server
}

// Start is called when the service starts.
func (p *program) Start(s service.Service) error {
	p.srv = &http.Server{Addr: p.addr, Handler: p.handler, ReadHeaderTimeout: 10 * time.Second}
	go p.run()
	return nil
}

func (p *program) run() {
	log.Printf("Starting HTTP dispatcher on %s...", p.addr)
	if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// Stop is called when the service stops.
func (p *program) Stop(s service.Service) error {
	log.Println("Service stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.srv.Shutdown(ctx)
}

// printOnce writes both snapshots to stdout as JSON.
func printOnce(probe *collectors.Probe) error {
	out := map[string]any{"cpu": probe.CPU()}
	if gpu, err := probe.GPU(); err != nil {
		out["gpu_error"] = err.Error()
	} else {
		out["gpu"] = gpu
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func publishOnce(cfg config.Config, probe *collectors.Probe) error {
	name, err := publish.ResolveSystemName(cfg.SystemName)
	if err != nil {
		return err
	}
	gpu, gpuErr := probe.GPU()
	if gpuErr != nil {
		log.Printf("GPU query failed: %v", gpuErr)
	}
	msg := publish.BuildMessage(name, probe.CPU(), gpu, gpuErr, time.Now())
	return publish.Publish(cfg.NatsURL, cfg.NatsSubject, msg)
}

func main() {
	svcConfig := &service.Config{
		Name:        "HWInfoService",
		DisplayName: "Hardware Info Service",
		Description: "Serves CPU and GPU hardware snapshots to the desktop shell.",
	}

	configFile := flag.String("config", "config.json", "Path to JSON config file")
	envFile := flag.String("env", "", "Optional .env file with HWINFO_* overrides (default .env)")
	svcFlag := flag.String("service", "", "Install/uninstall/start/stop/run the Windows service (example: --service=install)")
	portFlag := flag.String("port", "", "Override port from config.json (e.g. 9182)")
	publishFlag := flag.Bool("publish", false, "Publish one snapshot to NATS JetStream and exit")
	natsURLFlag := flag.String("nats_url", "", "NATS server URL")
	onceFlag := flag.Bool("once", false, "Print one CPU and GPU snapshot as JSON and exit")
	verboseFlag := flag.Bool("verbose", false, "Log which data sources were unavailable")

	flag.Parse()

	cfg, loadErr := config.Load(*configFile)
	var envErr error
	if *envFile != "" {
		envErr = config.ApplyEnv(&cfg, *envFile)
	} else {
		envErr = config.ApplyEnv(&cfg)
	}
	if envErr != nil {
		log.Fatalf("Invalid -env file %s: %v", *envFile, envErr)
	}
	if *portFlag != "" {
		cfg.Port = *portFlag
	}
	if *natsURLFlag != "" {
		cfg.NatsURL = *natsURLFlag
	}
	if *verboseFlag {
		cfg.Verbose = true
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logOut, closeLog := logging.Setup(cfg)
	defer closeLog()
	if loadErr != nil {
		log.Printf("Could not read config file %s. Using defaults: %v", *configFile, loadErr)
	}

	probe := collectors.NewProbe()
	if cfg.Verbose {
		probe.Logf = log.Printf
	}

	switch {
	case *onceFlag:
		if err := printOnce(probe); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	case *publishFlag:
		if err := publishOnce(cfg, probe); err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
		return
	}

	gin.SetMode(gin.ReleaseMode)
	prg := &program{
		addr:    ":" + cfg.Port,
		handler: dispatch.New(probe).Router(logOut),
	}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		log.Fatalf("Cannot start service: %v", err)
	}

	if *svcFlag != "" {
		if err := service.Control(s, *svcFlag); err != nil {
			log.Printf("Valid service actions: %v", service.ControlAction)
			log.Fatal(err)
		}
		log.Printf("Service action '%s' executed successfully.", *svcFlag)
		return
	}

	if err := s.Run(); err != nil {
		log.Fatal(err)
	}
}
