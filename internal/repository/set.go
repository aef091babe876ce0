package repository

import "database/sql"

// Set bundles every repository over one connection pool.
type Set struct {
	Content     *ContentRepo
	Bookings    *BookingRepo
	Messages    *MessageRepo
	Subscribers *SubscriberRepo
	Products    *ProductRepo
	Services    *ServiceRepo
	Orders      *OrderRepo
	Users       *UserRepo
	Tokens      *TokenRepo
}

// NewSet wires all repositories to db.
func NewSet(db *sql.DB) Set {
	products := NewProductRepo(db)
	return Set{
		Content:     NewContentRepo(db),
		Bookings:    NewBookingRepo(db),
		Messages:    NewMessageRepo(db),
		Subscribers: NewSubscriberRepo(db),
		Products:    products,
		Services:    NewServiceRepo(db),
		Orders:      NewOrderRepo(db, products),
		Users:       NewUserRepo(db),
		Tokens:      NewTokenRepo(db),
	}
}
