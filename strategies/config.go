package strategies

// Config carries the variant selector and the numeric parameters of every
// strategy. Each constructor reads only the fields it needs and substitutes
// its defaults for zero values.
type Config struct {
	Name string `yaml:"name"`

	// threshold
	BuyThreshold  float64 `yaml:"buy_threshold"`
	SellThreshold float64 `yaml:"sell_threshold"`

	// sma_cross
	SMAShort int `yaml:"sma_short"`
	SMALong  int `yaml:"sma_long"`

	// rsi / intraday_reversion confirmation
	RSIPeriod     int     `yaml:"rsi_period"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought"`

	// bollinger / intraday_reversion bands
	Period        int     `yaml:"period"`
	StdMultiplier float64 `yaml:"std_multiplier"`

	// opening_range
	OpeningRangeMinutes int     `yaml:"opening_range_minutes"`
	VolumeThreshold     float64 `yaml:"volume_threshold"`
	BreakoutThreshold   float64 `yaml:"breakout_threshold"`

	// momentum_breakout
	LookbackPeriod    int     `yaml:"lookback_period"`
	MomentumThreshold float64 `yaml:"momentum_threshold"`
	VolumeMultiplier  float64 `yaml:"volume_multiplier"`

	// shared intraday risk limits
	ProfitTargetPct      float64 `yaml:"profit_target_pct"`
	StopLossPct          float64 `yaml:"stop_loss_pct"`
	MaxEntriesPerSession int     `yaml:"max_entries_per_session"`
	ExcludeOpenMinutes   int     `yaml:"exclude_open_minutes"`
	ExcludeCloseMinutes  int     `yaml:"exclude_close_minutes"`
}
