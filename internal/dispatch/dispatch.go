// Package dispatch maps command names to hardware queries and serves them
// over HTTP for the UI shell.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gysosin/hwinfo/internal/collectors"
)

// Command names the UI shell invokes.
const (
	CmdCPUInfo = "get_cpu_info"
	CmdGPUInfo = "get_gpu_info"
)

// ErrUnknownCommand is returned by Invoke for names with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// Querier runs the hardware queries. *collectors.Probe satisfies it.
type Querier interface {
	CPU() collectors.CPUSnapshot
	GPU() (collectors.GPUSnapshot, error)
}

// Command produces a JSON-serializable result or an error message for the caller.
type Command func() (any, error)

// Dispatcher is a registry of named commands.
type Dispatcher struct {
	q        Querier
	commands map[string]Command
}

// New registers the hardware queries backed by q.
func New(q Querier) *Dispatcher {
	d := &Dispatcher{q: q, commands: map[string]Command{}}
	d.Register(CmdCPUInfo, func() (any, error) { return q.CPU(), nil })
	d.Register(CmdGPUInfo, func() (any, error) {
		snap, err := q.GPU()
		if err != nil {
			return nil, err
		}
		return snap, nil
	})
	return d
}

// Register adds or replaces a command.
func (d *Dispatcher) Register(name string, cmd Command) {
	d.commands[name] = cmd
}

// Commands lists the registered names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command.
func (d *Dispatcher) Invoke(name string) (any, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd()
}

// Router builds the HTTP surface. Request logs and recovered panics go to logOut.
func (d *Dispatcher) Router(logOut io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(logOut), gin.RecoveryWithWriter(logOut))

	r.GET("/invoke/:command", d.handleInvoke)
	r.POST("/invoke/:command", d.handleInvoke)
	r.GET("/metrics", d.handleMetrics)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "commands": d.Commands()})
	})
	return r
}

func (d *Dispatcher) handleInvoke(c *gin.Context) {
	result, err := d.Invoke(c.Param("command"))
	switch {
	case errors.Is(err, ErrUnknownCommand):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, collectors.ErrRegistryUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": collectors.ErrRegistryUnavailable.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (d *Dispatcher) handleMetrics(c *gin.Context) {
	cpu := d.q.CPU()
	var gpu *collectors.GPUSnapshot
	if snap, err := d.q.GPU(); err == nil {
		gpu = &snap
	}
	c.Data(http.StatusOK, "text/plain; version=0.0.4", []byte(collectors.GenerateMetrics(cpu, gpu)))
}
