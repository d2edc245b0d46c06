// Package monitoring turns a running simulation into a small web server for
// external inspection and control.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
)

// A Runner is a simulation loop that can be paused and continued.
type Runner interface {
	Pause()
	Continue()
}

// Monitor exposes the state of a simulation over HTTP.
type Monitor struct {
	clock       *sim.ClockGenerator
	runner      Runner
	components  []sim.Component
	computers   []*obc.OnBoardComputer
	portNumber  int
	openBrowser bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor server.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the status page in a browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterClock registers the clock generator driving the simulation.
func (m *Monitor) RegisterClock(c *sim.ClockGenerator) {
	m.clock = c
}

// RegisterRunner registers the simulation loop to pause and continue.
func (m *Monitor) RegisterRunner(r Runner) {
	m.runner = r
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// RegisterComputer registers an on-board computer whose port registries are
// to be monitored.
func (m *Monitor) RegisterComputer(c *obc.OnBoardComputer) {
	m.computers = append(m.computers, c)
}

// StartServer starts the monitor as a web server and returns its base URL.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/pause", m.pauseRun)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/ports", m.listPortLevels)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/now")
	}

	return url
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"tick\":%d}", m.clock.Count())
}

func (m *Monitor) pauseRun(w http.ResponseWriter, _ *http.Request) {
	if m.runner == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	m.runner.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	if m.runner == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	m.runner.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	data, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	var component sim.Component
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

type portLevelRsp struct {
	Computer   string `json:"computer"`
	PortID     int    `json:"port_id"`
	TxLevel    int    `json:"tx_level"`
	TxCapacity int    `json:"tx_capacity"`
	RxLevel    int    `json:"rx_level"`
	RxCapacity int    `json:"rx_capacity"`
}

func (m *Monitor) listPortLevels(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]portLevelRsp, 0)
	for _, c := range m.computers {
		for _, l := range c.UartLevels() {
			rsp = append(rsp, portLevelRsp{
				Computer:   c.Name(),
				PortID:     l.PortID,
				TxLevel:    l.TxLevel,
				TxCapacity: l.TxCapacity,
				RxLevel:    l.RxLevel,
				RxCapacity: l.RxCapacity,
			})
		}
	}

	data, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	data, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	data, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
