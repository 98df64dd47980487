package trello

// Board is a Trello board.
type Board struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Closed   bool   `json:"closed"`
	ShortURL string `json:"shortUrl"`
}

// List is a list on a board.
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Closed  bool   `json:"closed"`
}

// Card is a card on a list.
type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Desc    string `json:"desc"`
	IDList  string `json:"idList"`
	IDBoard string `json:"idBoard"`
}
