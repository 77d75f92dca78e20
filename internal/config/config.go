package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var (
	ErrUnsupportedDriver       = errors.New("unsupported database driver")
	ErrInvalidGrowthMultiplier = errors.New("invalid forecast growth multiplier")
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Forecast Forecast `mapstructure:",squash"`
	Seed     Seed     `mapstructure:",squash"`
	Export   Export   `mapstructure:",squash"`
	Cors     Cors     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"server_write_timeout"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Host     string `mapstructure:"database_host"`
	Port     int    `mapstructure:"database_port"`
	Name     string `mapstructure:"database_name"`
	User     string `mapstructure:"database_user"`
	Password string `mapstructure:"database_password"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type Forecast struct {
	GrowthMultiplier    float64                `mapstructure:"forecast_growth_multiplier"`
	TargetYear          int                    `mapstructure:"forecast_target_year"` // 0: último ano com dados + 1
	SeasonalFactorsFile string                 `mapstructure:"forecast_seasonal_factors_file"`
	SeasonalFactors     domain.SeasonalFactors `mapstructure:"-"`
}

type Seed struct {
	RandomSeed uint64 `mapstructure:"seed_random_seed"`
	Customers  int    `mapstructure:"seed_customers"`
	Sellers    int    `mapstructure:"seed_sellers"`
	Sales      int    `mapstructure:"seed_sales"`
	StartDate  string `mapstructure:"seed_start_date"`
	EndDate    string `mapstructure:"seed_end_date"`
	BatchSize  int    `mapstructure:"seed_batch_size"`
}

type Export struct {
	OutputPath string `mapstructure:"export_output_path"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "60s")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", 5432)
	viper.SetDefault("DATABASE_NAME", "ventas")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("FORECAST_GROWTH_MULTIPLIER", domain.DefaultGrowthMultiplier) // +10% sobre a média histórica
	viper.SetDefault("FORECAST_TARGET_YEAR", 0)
	viper.SetDefault("FORECAST_SEASONAL_FACTORS_FILE", "")

	// Dados sintéticos: 2000 vendas entre 2022 e 2024
	viper.SetDefault("SEED_RANDOM_SEED", 42)
	viper.SetDefault("SEED_CUSTOMERS", 200)
	viper.SetDefault("SEED_SELLERS", 20)
	viper.SetDefault("SEED_SALES", 2000)
	viper.SetDefault("SEED_START_DATE", "2022-01-01")
	viper.SetDefault("SEED_END_DATE", "2024-12-31")
	viper.SetDefault("SEED_BATCH_SIZE", 500)

	viper.SetDefault("EXPORT_OUTPUT_PATH", "reporte_ventas.xlsx")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if !domain.IsPositiveFinite(config.Forecast.GrowthMultiplier) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrowthMultiplier, config.Forecast.GrowthMultiplier)
	}

	config.Database.DSN, err = BuildDSN(config.Database)
	if err != nil {
		return nil, err
	}

	config.Forecast.SeasonalFactors = domain.DefaultSeasonalFactors
	if config.Forecast.SeasonalFactorsFile != "" {
		factors, err := LoadSeasonalFactors(config.Forecast.SeasonalFactorsFile)
		if err != nil {
			return nil, err
		}
		config.Forecast.SeasonalFactors = factors
	}

	return config, nil
}

// BuildDSN monta a string de conexão no formato esperado por cada driver
func BuildDSN(db Database) (string, error) {
	address := net.JoinHostPort(db.Host, strconv.Itoa(db.Port))

	switch db.Driver {
	case DriverPostgres:
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.User, db.Password),
			Host:     address,
			Path:     db.Name,
			RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
		}
		return dsn.String(), nil
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = db.User
		cfg.Passwd = db.Password
		cfg.Net = "tcp"
		cfg.Addr = address
		cfg.DBName = db.Name
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, db.Driver)
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}
}
