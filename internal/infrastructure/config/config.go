package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Workbook
	WorkbookPath     string   `env:"WORKBOOK_PATH"       envDefault:"PLANILHA VENCEDORA_094023.xlsx"`
	WorkbookSheet    string   `env:"WORKBOOK_SHEET"      envDefault:"PO-PLE"`
	HeaderRow        int      `env:"WORKBOOK_HEADER_ROW" envDefault:"2"`
	IDColumns        []string `env:"ID_COLUMNS"          envDefault:"1|N° Macrosserviço / Serviço|Nº Macrosserviço / Serviço" envSeparator:"|"`
	ValueColumns     []string `env:"VALUE_COLUMNS"       envDefault:"VALOR UNIT. COM BDI|Preço Unitário (valor calculado).1"  envSeparator:"|"`
	IDColumnIndex    int      `env:"ID_COLUMN_INDEX"     envDefault:"1"`
	ValueColumnIndex int      `env:"VALUE_COLUMN_INDEX"  envDefault:"12"`

	// Outputs
	AuditLogPath   string `env:"AUDIT_LOG_PATH"  envDefault:"resultado_atualizacao.csv"`
	DiagnosticsDir string `env:"DIAGNOSTICS_DIR" envDefault:"errors"`
	MetricsPath    string `env:"METRICS_PATH"    envDefault:""`

	// Browser session
	BrowserURL     string `env:"BROWSER_URL"      envDefault:"http://localhost:9222"`
	PageURLPattern string `env:"PAGE_URL_PATTERN" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Bounds
	IdentityRetries     int           `env:"IDENTITY_RETRIES"      envDefault:"2"`
	RetryInterval       time.Duration `env:"RETRY_INTERVAL"        envDefault:"300ms"`
	MaxScrolls          int           `env:"MAX_SCROLLS"           envDefault:"60"`
	MaxContainers       int           `env:"MAX_CONTAINERS"        envDefault:"25"`
	ContainerScrollStep int           `env:"CONTAINER_SCROLL_STEP" envDefault:"800"`
	ViewportScrollStep  int           `env:"VIEWPORT_SCROLL_STEP"  envDefault:"1000"`
	ScrollPause         time.Duration `env:"SCROLL_PAUSE"          envDefault:"80ms"`
	ElementTimeout      time.Duration `env:"ELEMENT_TIMEOUT"       envDefault:"1800ms"`
	ListReadyTimeout    time.Duration `env:"LIST_READY_TIMEOUT"    envDefault:"20s"`
	NetworkIdleTimeout  time.Duration `env:"NETWORK_IDLE_TIMEOUT"  envDefault:"15s"`
	SuccessTimeout      time.Duration `env:"SUCCESS_TIMEOUT"       envDefault:"7s"`
	NavigationDeadline  time.Duration `env:"NAVIGATION_DEADLINE"   envDefault:"15s"`
	TypeDelay           time.Duration `env:"TYPE_DELAY"            envDefault:"40ms"`
	SettleDelay         time.Duration `env:"SETTLE_DELAY"          envDefault:"200ms"`

	// Target application vocabulary
	EditText       string   `env:"EDIT_TEXT"       envDefault:"Editar"`
	SaveText       string   `env:"SAVE_TEXT"       envDefault:"Salvar"`
	PriceLabels    []string `env:"PRICE_LABELS"    envDefault:"Preço Unitário Licitado|Preço unitário licitado"                                                              envSeparator:"|"`
	PriceSelectors []string `env:"PRICE_SELECTORS" envDefault:"[data-testid='campo-preco-unitario-licitado'], [data-testid='campo-valor-unitario-licitado']|input[name*='preco' i][name*='licitado' i]" envSeparator:"|"`
	MacroLabel     string   `env:"MACRO_LABEL"     envDefault:"Macrosserviço Associado"`
	ItemLabel      string   `env:"ITEM_LABEL"      envDefault:"Número do Serviço"`
	SuccessTexts   []string `env:"SUCCESS_TEXTS"   envDefault:"Salvo com sucesso|Atualizado com sucesso"                                                                    envSeparator:"|"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
