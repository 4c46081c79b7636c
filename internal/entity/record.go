package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// StatusPublished marks a survey that may be shown.
const StatusPublished = "Published"

// Linked is one entry of a linked-record field.
type Linked[T any] struct {
	Data *T `json:"data,omitempty"`
}

// First returns the first linked record that carries data, or nil.
func First[T any](links []Linked[T]) *T {
	for _, l := range links {
		if l.Data != nil {
			return l.Data
		}
	}
	return nil
}

// Records returns the linked records that carry data, in order.
func Records[T any](links []Linked[T]) []*T {
	out := make([]*T, 0, len(links))
	for _, l := range links {
		if l.Data != nil {
			out = append(out, l.Data)
		}
	}
	return out
}

// Link wraps records as a linked-record field.
func Link[T any](records ...*T) []Linked[T] {
	out := make([]Linked[T], 0, len(records))
	for _, r := range records {
		out = append(out, Linked[T]{Data: r})
	}
	return out
}

// Business is a place listed in the directory.
type Business struct {
	RecordID        string                 `json:"Record_ID"`
	Name            string                 `json:"Name"`
	URL             string                 `json:"URL"`
	Website         Text                   `json:"Website,omitempty"`
	Phone           Text                   `json:"Phone,omitempty"`
	FacebookLink    Text                   `json:"Facebook_link,omitempty"`
	VNMMLink        Text                   `json:"VNMM_link,omitempty"`
	VNMMRating      Number                 `json:"VNMM_rating"`
	VNMMRatingCount Number                 `json:"VNMM_rating_count"`
	Category        []Linked[Category]     `json:"Category,omitempty"`
	Neighborhood    []Linked[Neighborhood] `json:"Neighborhood,omitempty"`
	Locations       []Linked[Location]     `json:"Locations,omitempty"`
	CoverPhoto      *Attachments           `json:"Cover_photo,omitempty"`
	ProfilePhoto    *Attachments           `json:"Profile_photo,omitempty"`
	Survey          []Linked[Survey]       `json:"Survey,omitempty"`
	CocoPoints      Number                 `json:"Coco_points"`
}

// Slug returns the trimmed URL slug without surrounding slashes.
func (b *Business) Slug() string {
	return strings.Trim(strings.TrimSpace(b.URL), "/")
}

// Survey is one questionnaire about the practices of a business.
type Survey struct {
	RecordID           string       `json:"Record_ID,omitempty"`
	Status             string       `json:"Status"`
	CocoPoints         Number       `json:"Coco_points"`
	DineInPoints       Number       `json:"Dine_in_points"`
	TakeOutPoints      Number       `json:"Take_out_points"`
	KitchenPoints      Number       `json:"Kitchen_points"`
	MenuPoints         Number       `json:"Menu_points"`
	FromTheBusiness    Text         `json:"From_the_business,omitempty"`
	FromTheEditor      Text         `json:"From_the_editor,omitempty"`
	PrefillQueryString Text         `json:"Survey_prefill_query_string,omitempty"`
	Attachments        *Attachments `json:"Attachments,omitempty"`

	NoPlasticStraws       Tokens   `json:"No_plastic_straws,omitempty"`
	NoPlasticBags         Tokens   `json:"No_plastic_bags,omitempty"`
	NoPlasticBottles      Tokens   `json:"No_plastic_bottles,omitempty"`
	BYOContainerDiscount  Tokens   `json:"BYO_container_discount,omitempty"`
	BYOCDiscountAmount    Text     `json:"BYOC_discount_amount,omitempty"`
	FreeDrinkingWater     Tokens   `json:"Free_drinking_water,omitempty"`
	GreenDelivery         Tokens   `json:"Green_delivery,omitempty"`
	DeliveryOnly          Checkbox `json:"Delivery_only,omitempty"`
	DineInStraws          Tokens   `json:"Dine_in_straws,omitempty"`
	DineInUtensils        Tokens   `json:"Dine_in_utensils,omitempty"`
	DineInNapkins         Tokens   `json:"Dine_in_napkins,omitempty"`
	DineInDrinkContainers Tokens   `json:"Dine_in_drink_containers,omitempty"`
	DineInCups            Tokens   `json:"Dine_in_cups,omitempty"`
	DineInDrinkStirrers   Tokens   `json:"Dine_in_drink_stirrers,omitempty"`
	DineInLinens          Tokens   `json:"Dine_in_linens__table_or_placemats_,omitempty"`
	DineInDishes          Tokens   `json:"Dine_in_dishes,omitempty"`
	RestroomHandTowels    Tokens   `json:"Restroom_hand_towels,omitempty"`
	TakeOutBags           Tokens   `json:"Take_out_bags,omitempty"`
	TakeOutContainers     Tokens   `json:"Take_out_containers,omitempty"`
	TakeOutCups           Tokens   `json:"Take_out_cups,omitempty"`
	TakeOutContainerLids  Tokens   `json:"Take_out_container_lids,omitempty"`
	TakeOutCupLids        Tokens   `json:"Take_out_cup_lids,omitempty"`
	TakeOutStraws         Tokens   `json:"Take_out_straws,omitempty"`
	TakeOutCupCarriers    Tokens   `json:"Take_out_cup_carriers,omitempty"`
	TakeOutCupSleeves     Tokens   `json:"Take_out_cup_sleeves,omitempty"`
	TakeOutFoodWrapping   Tokens   `json:"Take_out_food_wrapping,omitempty"`
	KitchenPipingBags     Tokens   `json:"Kitchen_piping_bags,omitempty"`
	KitchenPanLiners      Tokens   `json:"Kitchen_pan_liners,omitempty"`
	KitchenFoodWrapping   Tokens   `json:"Kitchen_food_wrapping,omitempty"`
	KitchenGloves         Tokens   `json:"Kitchen_gloves,omitempty"`
	KitchenFreezePackage  Tokens   `json:"Kitchen_food_freeze_packaging,omitempty"`
	KitchenWaste          Tokens   `json:"Kitchen_waste_management,omitempty"`
	FoodWastePrograms     Tokens   `json:"Food_waste_programs,omitempty"`
	Menu                  Tokens   `json:"Menu,omitempty"`
	Miscellaneous         Text     `json:"Miscellaneous,omitempty"`
}

// Published reports whether the survey may be shown.
func (s *Survey) Published() bool {
	return s != nil && strings.TrimSpace(s.Status) == StatusPublished
}

// Category groups businesses by kind.
type Category struct {
	Name string `json:"Name"`
}

// City is a city with its own landing page.
type City struct {
	Name     string            `json:"Name"`
	NameVI   string            `json:"Name_VI,omitempty"`
	URL      string            `json:"URL"`
	Cover    *Attachments      `json:"Cover,omitempty"`
	Partners []Linked[Partner] `json:"Partners,omitempty"`
}

// Slug returns the trimmed URL slug without surrounding slashes.
func (c *City) Slug() string {
	return strings.Trim(strings.TrimSpace(c.URL), "/")
}

// LocalizedName returns the name for lang.
func (c *City) LocalizedName(lang string) string {
	return localizedName(c.Name, c.NameVI, lang)
}

// Neighborhood is a district of a city.
type Neighborhood struct {
	Name   string         `json:"Name"`
	NameVI string         `json:"Name_VI,omitempty"`
	City   []Linked[City] `json:"City,omitempty"`
}

// LocalizedName returns the name for lang.
func (n *Neighborhood) LocalizedName(lang string) string {
	return localizedName(n.Name, n.NameVI, lang)
}

// Location is one address of a business.
type Location struct {
	Name         string                 `json:"Name,omitempty"`
	Neighborhood []Linked[Neighborhood] `json:"Neighborhood,omitempty"`
}

// Partner is an organisation promoted on a city page.
type Partner struct {
	Name string       `json:"Name"`
	Link Text         `json:"Link,omitempty"`
	Logo *Attachments `json:"Logo,omitempty"`
}

func localizedName(name, nameVI, lang string) string {
	if lang == "vi" && strings.TrimSpace(nameVI) != "" {
		return nameVI
	}
	return name
}

// Translation is one row of the translations table: a key and one message
// column per language.
type Translation struct {
	Key    string
	Values map[string]string
}

// UnmarshalJSON reads Key and treats every other string column as a language.
func (t *Translation) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	*t = Translation{Values: make(map[string]string, len(raw))}
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if k == "Key" {
			t.Key = strings.TrimSpace(s)
			continue
		}
		t.Values[k] = s
	}
	return nil
}

// MarshalJSON writes the row back in column form.
func (t Translation) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(t.Values)+1)
	for k, v := range t.Values {
		out[k] = v
	}
	out["Key"] = t.Key
	return json.Marshal(out)
}

// Snapshot is every content record of one fetch.
type Snapshot struct {
	FetchedAt     time.Time      `json:"fetched_at"`
	Businesses    []Business     `json:"businesses"`
	Cities        []City         `json:"cities"`
	Neighborhoods []Neighborhood `json:"neighborhoods"`
	Translations  []Translation  `json:"translations"`
}
