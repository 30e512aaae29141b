package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/energy-billing/invoice-reader/dto"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "INVOICE"

type Config struct {
	Server ServerConfig
	Upload UploadConfig
	PDF    PDFConfig
	Log    LogConfig
	Layout dto.Layout
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                 string
	MaxMultipartMemoryMB int64
}

// UploadConfig holds where uploaded invoices are kept.
type UploadConfig struct {
	Dir           string
	MaxFileSizeMB int64
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// PDFConfig holds text extraction settings.
type PDFConfig struct {
	Validate bool
	Password string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with the INVOICE_ prefix
// and, when INVOICE_CONFIG_FILE is set, from that file. The file is the usual
// place for an alternate layout template.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	envBindings := map[string]string{
		"server.port":                    "INVOICE_SERVER_PORT",
		"server.max_multipart_memory_mb": "INVOICE_SERVER_MAX_MULTIPART_MEMORY_MB",
		"upload.dir":                     "INVOICE_UPLOAD_DIR",
		"upload.max_file_size_mb":        "INVOICE_UPLOAD_MAX_FILE_SIZE_MB",
		"pdf.validate":                   "INVOICE_PDF_VALIDATE",
		"pdf.password":                   "INVOICE_PDF_PASSWORD",
		"log.level":                      "INVOICE_LOG_LEVEL",
		"log.format":                     "INVOICE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if file := os.Getenv(EnvPrefix + "_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:                 v.GetString("server.port"),
			MaxMultipartMemoryMB: v.GetInt64("server.max_multipart_memory_mb"),
		},
		Upload: UploadConfig{
			Dir:           v.GetString("upload.dir"),
			MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		},
		PDF: PDFConfig{
			Validate: v.GetBool("pdf.validate"),
			Password: v.GetString("pdf.password"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Layout: loadLayout(v),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.max_multipart_memory_mb", 32)

	v.SetDefault("upload.dir", "/tmp/uploads")
	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("pdf.validate", false)
	v.SetDefault("pdf.password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	l := dto.DefaultLayout()
	v.SetDefault("layout.item_prefixes", l.ItemPrefixes)
	v.SetDefault("layout.unit_token", l.UnitToken)
	v.SetDefault("layout.code_lookback", l.CodeLookback)
	v.SetDefault("layout.quantity_token", l.QuantityToken)
	v.SetDefault("layout.value_token", l.ValueToken)
	v.SetDefault("layout.consumer_unit_line", l.ConsumerUnitLine)
	v.SetDefault("layout.reference_line", l.ReferenceLine)
	v.SetDefault("layout.reference_min_len", l.ReferenceMinLen)
	setSpanDefault(v, "layout.reference", l.Reference)
	setSpanDefault(v, "layout.due_date", l.DueDate)
	v.SetDefault("layout.reading_line", l.ReadingLine)
	setSpanDefault(v, "layout.previous_reading_date", l.PreviousReadingDate)
	setSpanDefault(v, "layout.current_reading_date", l.CurrentReadingDate)
	setSpanDefault(v, "layout.days_read", l.DaysRead)
	v.SetDefault("layout.next_reading_marker", l.NextReadingMarker)
	v.SetDefault("layout.next_reading_token", l.NextReadingToken)
	v.SetDefault("layout.next_reading_len", l.NextReadingLen)
	v.SetDefault("layout.meter_keywords", l.MeterKeywords)
	v.SetDefault("layout.meter_min_tokens", l.MeterMinTokens)
	v.SetDefault("layout.meter_id_token", l.MeterIDToken)
	v.SetDefault("layout.meter_previous_token", l.MeterPrevToken)
	v.SetDefault("layout.meter_current_token", l.MeterCurToken)
	v.SetDefault("layout.meter_total_token", l.MeterTotToken)
}

func setSpanDefault(v *viper.Viper, key string, s dto.Span) {
	v.SetDefault(key+".start", s.Start)
	v.SetDefault(key+".end", s.End)
}

// loadLayout reads every layout key on its own so values from the config file,
// the environment and the defaults merge per key.
func loadLayout(v *viper.Viper) dto.Layout {
	span := func(key string) dto.Span {
		return dto.Span{Start: v.GetInt(key + ".start"), End: v.GetInt(key + ".end")}
	}
	return dto.Layout{
		ItemPrefixes:        v.GetStringSlice("layout.item_prefixes"),
		UnitToken:           v.GetString("layout.unit_token"),
		CodeLookback:        v.GetInt("layout.code_lookback"),
		QuantityToken:       v.GetInt("layout.quantity_token"),
		ValueToken:          v.GetInt("layout.value_token"),
		ConsumerUnitLine:    v.GetInt("layout.consumer_unit_line"),
		ReferenceLine:       v.GetInt("layout.reference_line"),
		ReferenceMinLen:     v.GetInt("layout.reference_min_len"),
		Reference:           span("layout.reference"),
		DueDate:             span("layout.due_date"),
		ReadingLine:         v.GetInt("layout.reading_line"),
		PreviousReadingDate: span("layout.previous_reading_date"),
		CurrentReadingDate:  span("layout.current_reading_date"),
		DaysRead:            span("layout.days_read"),
		NextReadingMarker:   v.GetString("layout.next_reading_marker"),
		NextReadingToken:    v.GetInt("layout.next_reading_token"),
		NextReadingLen:      v.GetInt("layout.next_reading_len"),
		MeterKeywords:       v.GetStringSlice("layout.meter_keywords"),
		MeterMinTokens:      v.GetInt("layout.meter_min_tokens"),
		MeterIDToken:        v.GetInt("layout.meter_id_token"),
		MeterPrevToken:      v.GetInt("layout.meter_previous_token"),
		MeterCurToken:       v.GetInt("layout.meter_current_token"),
		MeterTotToken:       v.GetInt("layout.meter_total_token"),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("upload.dir is required")
	}
	l := c.Layout
	if l.UnitToken == "" {
		return fmt.Errorf("layout.unit_token is required")
	}
	for name, idx := range map[string]int{
		"layout.quantity_token":       l.QuantityToken,
		"layout.value_token":          l.ValueToken,
		"layout.next_reading_token":   l.NextReadingToken,
		"layout.meter_id_token":       l.MeterIDToken,
		"layout.meter_previous_token": l.MeterPrevToken,
		"layout.meter_current_token":  l.MeterCurToken,
		"layout.meter_total_token":    l.MeterTotToken,
	} {
		if idx < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}
