package startup

import (
	"flag"
	"fmt"
	"os"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"github.com/tedsuo/ifrit/sigmon"

	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"
)

type ConfigWithLogging interface {
	Validate() error
	GetLogging() *helpers.LoggingConfig
}

type ConfigLoader[T ConfigWithLogging] func(path string) (T, error)

type Flags struct {
	ConfigPath string
	Once       bool
}

func ParseFlags() Flags {
	var flags Flags
	flag.StringVar(&flags.ConfigPath, "c", "", "config file")
	flag.BoolVar(&flags.Once, "once", false, "run a single reconciliation pass and exit")
	flag.Parse()
	return flags
}

func LoadAndValidateConfig[T ConfigWithLogging](path string, loader ConfigLoader[T]) (T, error) {
	var zero T
	conf, err := loader(path)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "failed to read config file '%s' : %s\n", path, err.Error())
		return zero, err
	}

	err = conf.Validate()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "failed to validate configuration : %s\n", err.Error())
		return zero, err
	}

	return conf, nil
}

func InitLogger(loggingConfig *helpers.LoggingConfig, serviceName string) (lager.Logger, error) {
	logger, err := helpers.NewLogger(loggingConfig, serviceName, os.Stdout)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "failed to create logger : %s\n", err.Error())
		return nil, err
	}
	return logger, nil
}

func StartServices(logger lager.Logger, members grouper.Members) error {
	monitor := ifrit.Invoke(sigmon.New(grouper.NewOrdered(os.Interrupt, members)))
	logger.Info("started")
	err := <-monitor.Wait()
	if err != nil {
		logger.Error("exited-with-failure", err)
		return err
	}
	logger.Info("exited")
	return nil
}

func ExitOnError(err error, logger lager.Logger, message string, data ...lager.Data) {
	if err != nil {
		if len(data) > 0 {
			logger.Error(message, err, data[0])
		} else {
			logger.Error(message, err)
		}
		os.Exit(1)
	}
}

// Bootstrap parses the flags, loads and validates the configuration and
// builds the logger. Any failure exits the process.
func Bootstrap[T ConfigWithLogging](serviceName string, configLoader ConfigLoader[T]) (T, Flags, lager.Logger) {
	flags := ParseFlags()

	conf, err := LoadAndValidateConfig(flags.ConfigPath, configLoader)
	if err != nil {
		os.Exit(1)
	}

	logger, err := InitLogger(conf.GetLogging(), serviceName)
	if err != nil {
		os.Exit(1)
	}

	return conf, flags, logger
}
