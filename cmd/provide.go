package cmd

import (
	"zendex/core"
	"zendex/pkg/kv"
	"zendex/service/exchange"
	"zendex/service/ledger"
	"zendex/service/native"
	"zendex/store/chain"
	exchangestore "zendex/store/exchange"
	ledgerstore "zendex/store/ledger"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
)

// node bundles the stores and services a command operates on.
type node struct {
	db       kv.Store
	chain    *chain.Store
	ledger   core.Ledger
	currency core.NativeCurrency
	exchange core.ExchangeService
}

func provideNode() *node {
	db, err := kv.OpenBadger(cfg.DB.DataDir)
	if err != nil {
		panic(err)
	}

	bus := provideBus()
	clock := chain.New(db)
	ledgerz := ledger.New(ledgerstore.New(), bus)
	currency := native.New(cfg.Currency.ExistentialDeposit)

	return &node{
		db:       db,
		chain:    clock,
		ledger:   ledgerz,
		currency: currency,
		exchange: exchange.New(db, exchangestore.New(), ledgerz, currency, clock, bus),
	}
}

func (n *node) Close() {
	if err := n.db.Close(); err != nil {
		logrus.WithError(err).Errorln("close store")
	}
}

// provideBus wires the notification bus; in the CLI the only consumer is the
// debug logger.
func provideBus() EventBus.Bus {
	bus := EventBus.New()

	if debugMode {
		_ = bus.Subscribe(core.TopicTransferred, func(event *core.TransferredEvent) {
			logrus.WithField("event", core.TopicTransferred).Debugf("%+v", event)
		})
		_ = bus.Subscribe(core.TopicTokenPurchase, func(event *core.TokenPurchaseEvent) {
			logrus.WithField("event", core.TopicTokenPurchase).Debugf("%+v", event)
		})
		_ = bus.Subscribe(core.TopicCurrencyPurchase, func(event *core.CurrencyPurchaseEvent) {
			logrus.WithField("event", core.TopicCurrencyPurchase).Debugf("%+v", event)
		})
	}

	return bus
}
