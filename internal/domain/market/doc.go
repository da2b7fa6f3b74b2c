// Package market defines the simulated stock market: tracked companies, their
// quote history, the preset company list and the contracts of the price simulator
// and the services built on top of it.
package market
