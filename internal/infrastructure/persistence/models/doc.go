// Package models contains the GORM database models of the trading floor.
// They are kept apart from the domain entities and converted with ToDomain and
// FromDomain at the repository boundary.
package models

// All returns one instance of every model, in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&CompanyModel{},
		&StockHistoryModel{},
		&TransactionModel{},
		&ForumTopicModel{},
		&ForumPostModel{},
		&ForumCommentModel{},
		&ReactionModel{},
	}
}
