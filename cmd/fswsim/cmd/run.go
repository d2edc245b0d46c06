package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/orbitkit/fswsim/components/gnssreceiver"
	"github.com/orbitkit/fswsim/components/magnetometer"
	"github.com/orbitkit/fswsim/obc"
	"github.com/orbitkit/fswsim/sim"
	"github.com/orbitkit/fswsim/simulation"
)

// Port assignment of the sample spacecraft.
const (
	magPortID  = 0
	gnssPortID = 1
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sample spacecraft simulation.",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Int("ticks", 1000, "number of scheduling steps to run")
	runCmd.Flags().Int("mag-prescaler", 2, "rate divisor of the magnetometer")
	runCmd.Flags().Int("gnss-prescaler", 10, "rate divisor of the GNSS receiver")
	runCmd.Flags().Int("monitor-port", 0, "port of the monitoring server")
	runCmd.Flags().Bool("no-monitor", false, "disable the monitoring server")
	runCmd.Flags().Bool("browser", false, "open the monitor status page")
	runCmd.Flags().String("output", "", "telemetry database name")
	runCmd.Flags().Bool("verbose", false, "log every dispatch decision")

	viper.SetEnvPrefix("FSWSIM")
	viper.AutomaticEnv()
	dieOnErr(viper.BindPFlags(runCmd.Flags()))

	rootCmd.AddCommand(runCmd)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}

func buildSimulation() *simulation.Simulation {
	builder := simulation.MakeBuilder().
		WithOutputFileName(viper.GetString("output"))

	if viper.GetBool("no-monitor") {
		builder = builder.WithoutMonitoring()
	} else {
		if port := viper.GetInt("monitor-port"); port > 0 {
			builder = builder.WithMonitorPort(port)
		}
		if viper.GetBool("browser") {
			builder = builder.WithMonitorBrowser()
		}
	}

	return builder.Build()
}

func runSimulation(_ *cobra.Command, _ []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	s := buildSimulation()
	clock := s.Clock()

	if viper.GetBool("verbose") {
		clock.AcceptHook(sim.NewTickLogger(logger))
	}

	computer := obc.MakeBuilder().
		WithClock(clock).
		WithI2CRegisterCount(64).
		Build("OBC")
	s.RegisterComputer(computer)

	mag := magnetometer.MakeBuilder().
		WithClock(clock).
		WithPrescaler(viper.GetInt("mag-prescaler")).
		WithComputer(computer).
		WithPortID(magPortID).
		Build("MAG")
	s.RegisterComponent(mag)
	mag.SetField(22000, -3000, 41000)

	gnss := gnssreceiver.MakeBuilder().
		WithClock(clock).
		WithPrescaler(viper.GetInt("gnss-prescaler")).
		WithComputer(computer).
		WithPortID(gnssPortID).
		Build("GNSS")
	s.RegisterComponent(gnss)
	gnss.SetPosition(35.681236, 139.767125)

	ticks := viper.GetInt("ticks")
	logger.Info("starting simulation",
		zap.String("id", s.ID()), zap.Int("ticks", ticks))

	s.Run(ticks)

	buf := make([]byte, 1024)
	received := 0
	for {
		n := computer.ReceivedByObc(gnssPortID, buf)
		if n <= 0 {
			break
		}
		received += n
	}

	logger.Info("simulation complete",
		zap.Uint64("tick", uint64(clock.Count())),
		zap.Int("gnss_bytes", received))

	return s.Terminate()
}
