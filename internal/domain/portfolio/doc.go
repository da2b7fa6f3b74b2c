// Package portfolio models the virtual trading of users: transactions executed at
// simulated prices, the holdings they add up to and the net worth history derived
// from them.
package portfolio
