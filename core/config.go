package core

// Config zendex node config
type Config struct {
	App      App   `json:"app"`
	DB       DB    `json:"db"`
	Currency Chain `json:"currency"`
}

// App app config
type App struct {
	Location string `json:"location"`
	Genesis  int64  `json:"genesis"`
}

// DB storage config
type DB struct {
	DataDir string `json:"data_dir" valid:"required"`
}

// Chain native currency config
type Chain struct {
	// ExistentialDeposit minimum balance an account must keep to stay
	// alive under the KeepAlive transfer policy.
	ExistentialDeposit uint64 `json:"existential_deposit"`
}
