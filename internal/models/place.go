package models

// Place объявление, которое можно забронировать.
// Owner задаётся при создании и больше не меняется.
type Place struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       float64  `json:"price"`
}

// PlaceInput изменяемые поля объявления, приходящие от клиента.
type PlaceInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Address     string   `json:"address" validate:"required,max=500"`
	Photos      []string `json:"photos" validate:"max=100,dive,required"`
	Description string   `json:"description" validate:"max=10000"`
	Perks       []string `json:"perks" validate:"max=50,dive,required,max=50"`
	ExtraInfo   string   `json:"extraInfo" validate:"max=10000"`
	CheckIn     string   `json:"checkIn" validate:"omitempty,hhmm"`
	CheckOut    string   `json:"checkOut" validate:"omitempty,hhmm"`
	MaxGuests   int      `json:"maxGuests" validate:"required,gt=0"`
	Price       float64  `json:"price" validate:"required,gt=0"`
}

// UpdatePlaceInput тело запроса PUT /places.
type UpdatePlaceInput struct {
	ID string `json:"id" validate:"required,uuid"`
	PlaceInput
}

// Apply переносит изменяемые поля в объявление, не трогая ID и Owner.
func (in PlaceInput) Apply(p *Place) {
	p.Title = in.Title
	p.Address = in.Address
	p.Photos = append([]string{}, in.Photos...)
	p.Description = in.Description
	p.Perks = uniqueStrings(in.Perks)
	p.ExtraInfo = in.ExtraInfo
	p.CheckIn = in.CheckIn
	p.CheckOut = in.CheckOut
	p.MaxGuests = in.MaxGuests
	p.Price = in.Price
}

// uniqueStrings убирает повторы, сохраняя порядок первого вхождения.
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
