package models

// Book reprezentuje pozycję w katalogu.
// Nazwy pól w bazie (name, author, number) są zgodne z istniejącą kolekcją.
type Book struct {
	ID              string `json:"id" firestore:"-"`
	Name            string `json:"name" firestore:"name"`
	Author          string `json:"author" firestore:"author"`
	AvailableCopies int    `json:"available_copies" firestore:"number"`
}

// IsAvailable sprawdza czy książka jest dostępna do wypożyczenia
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
