package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// localOverrides перекрывает значения из .env на машине разработчика.
const localOverrides = ".env.local"

// Load читает .env, затем .env.local (если есть) и применяет флаги
// командной строки поверх переменных окружения.
func Load() error {
	if err := godotenv.Load(); err != nil {
		return err
	}

	if err := godotenv.Overload(localOverrides); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", localOverrides, err)
	}

	var portFlag, latencyFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.StringVar(&latencyFlag, "latency-factor", "", "Activity latency multiplier (overrides SIMULATION_LATENCY_FACTOR)")
	flag.Parse()

	overrides := map[string]string{
		"PORT":                      portFlag,
		"SIMULATION_LATENCY_FACTOR": latencyFlag,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
