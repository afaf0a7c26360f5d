package admission

import (
	"fmt"
	"strings"
)

// PortfolioConfig holds the resolved admission tunables for one invocation
// ⭐ SSOT: 승인 엔진 튜너블은 전역 상태가 아니라 호출마다 이 구조체로 전달
type PortfolioConfig struct {
	TargetVolatility      float64 `json:"target_volatility"`
	MaxDrawdownLimitPct   float64 `json:"max_drawdown_limit_pct"`
	MaxDrawdownLimitAbs   float64 `json:"max_drawdown_limit_abs"`
	CorrelationThreshold  float64 `json:"correlation_threshold"`
	MinLots               int     `json:"min_lots"`
	MaxLots               int     `json:"max_lots"`
	TotalCapital          float64 `json:"total_capital"`
	RiskBudgetPerStrategy float64 `json:"risk_budget_per_strategy"`
	Currency              string  `json:"currency"`
}

// DefaultPortfolioConfig returns the fixed defaults applied beneath any
// user override.
func DefaultPortfolioConfig() PortfolioConfig {
	return PortfolioConfig{
		TargetVolatility:      0.15,
		MaxDrawdownLimitPct:   20.0,
		MaxDrawdownLimitAbs:   10000.0,
		CorrelationThreshold:  0.7,
		MinLots:               1,
		MaxLots:               10,
		TotalCapital:          100000.0,
		RiskBudgetPerStrategy: 0.1,
		Currency:              "USD",
	}
}

// ConfigOverride is the caller's partial override. Absent (nil) fields keep
// their defaults; coupled fields must be overridden together.
type ConfigOverride struct {
	TargetVolatility      *float64 `json:"target_volatility,omitempty"`
	MaxDrawdownLimitPct   *float64 `json:"max_drawdown_limit_pct,omitempty"`
	MaxDrawdownLimitAbs   *float64 `json:"max_drawdown_limit_abs,omitempty"`
	CorrelationThreshold  *float64 `json:"correlation_threshold,omitempty"`
	MinLots               *int     `json:"min_lots,omitempty"`
	MaxLots               *int     `json:"max_lots,omitempty"`
	TotalCapital          *float64 `json:"total_capital,omitempty"`
	RiskBudgetPerStrategy *float64 `json:"risk_budget_per_strategy,omitempty"`
}

// Validate rejects incomplete or out-of-range overrides before any work.
// lot 경계와 MDD 한도(pct/abs)는 쌍으로만 덮어쓸 수 있음
func (o *ConfigOverride) Validate() error {
	if o == nil {
		return nil
	}

	missing := make([]string, 0)
	if (o.MinLots == nil) != (o.MaxLots == nil) {
		if o.MinLots == nil {
			missing = append(missing, "min_lots")
		} else {
			missing = append(missing, "max_lots")
		}
	}
	if (o.MaxDrawdownLimitPct == nil) != (o.MaxDrawdownLimitAbs == nil) {
		if o.MaxDrawdownLimitPct == nil {
			missing = append(missing, "max_drawdown_limit_pct")
		} else {
			missing = append(missing, "max_drawdown_limit_abs")
		}
	}
	if len(missing) > 0 {
		return ValidationError{
			Field:   "portfolio_config",
			Message: fmt.Sprintf("incomplete override, missing: %s", strings.Join(missing, ", ")),
		}
	}

	if o.MinLots != nil && o.MaxLots != nil && *o.MinLots > *o.MaxLots {
		return ValidationError{"portfolio_config.min_lots", "must be <= max_lots"}
	}
	if o.TargetVolatility != nil && *o.TargetVolatility <= 0 {
		return ValidationError{"portfolio_config.target_volatility", "must be > 0"}
	}
	if o.CorrelationThreshold != nil && (*o.CorrelationThreshold <= 0 || *o.CorrelationThreshold > 1) {
		return ValidationError{"portfolio_config.correlation_threshold", "must be in (0, 1]"}
	}
	if o.TotalCapital != nil && *o.TotalCapital <= 0 {
		return ValidationError{"portfolio_config.total_capital", "must be > 0"}
	}
	if o.RiskBudgetPerStrategy != nil && *o.RiskBudgetPerStrategy <= 0 {
		return ValidationError{"portfolio_config.risk_budget_per_strategy", "must be > 0"}
	}

	return nil
}

// BuildConfig merges a validated override over the defaults and resolves the
// portfolio currency from the loaded inputs.
//
// Currency rule: the single currency shared by every input; else "USD" when
// present among them; else "USD".
func BuildConfig(override *ConfigOverride, inputCurrencies []string) PortfolioConfig {
	cfg := DefaultPortfolioConfig()

	if override != nil {
		if override.TargetVolatility != nil {
			cfg.TargetVolatility = *override.TargetVolatility
		}
		if override.MaxDrawdownLimitPct != nil {
			cfg.MaxDrawdownLimitPct = *override.MaxDrawdownLimitPct
		}
		if override.MaxDrawdownLimitAbs != nil {
			cfg.MaxDrawdownLimitAbs = *override.MaxDrawdownLimitAbs
		}
		if override.CorrelationThreshold != nil {
			cfg.CorrelationThreshold = *override.CorrelationThreshold
		}
		if override.MinLots != nil {
			cfg.MinLots = *override.MinLots
		}
		if override.MaxLots != nil {
			cfg.MaxLots = *override.MaxLots
		}
		if override.TotalCapital != nil {
			cfg.TotalCapital = *override.TotalCapital
		}
		if override.RiskBudgetPerStrategy != nil {
			cfg.RiskBudgetPerStrategy = *override.RiskBudgetPerStrategy
		}
	}

	cfg.Currency = resolveCurrency(inputCurrencies)
	return cfg
}

// resolveCurrency applies the shared-single-currency rule.
func resolveCurrency(currencies []string) string {
	distinct := make(map[string]bool)
	for _, c := range currencies {
		if c != "" {
			distinct[c] = true
		}
	}
	if len(distinct) == 1 {
		for c := range distinct {
			return c
		}
	}
	// 단일 통화가 아니면 USD 우선, 아니어도 USD
	return "USD"
}
