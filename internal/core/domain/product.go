package domain

type Product struct {
	ID       int64
	Name     string
	Category string
	Price    float64
	Stock    int
}
