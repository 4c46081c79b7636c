// Package survey flattens a survey into rows for the details table.
package survey

import (
	"strings"

	"github.com/benknight/cocolist/internal/entity"
)

// YesToken is the value shown for a checked boolean field.
const YesToken = "Yes"

// Detail is one row of the details table. Label and Values are message keys.
type Detail struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type field struct {
	label  string
	values func(*entity.Survey) []string
}

func choice(label string, get func(*entity.Survey) entity.Tokens) field {
	return field{label: label, values: func(s *entity.Survey) []string {
		var out []string
		for _, v := range get(s) {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}}
}

func checkbox(label string, get func(*entity.Survey) entity.Checkbox) field {
	return field{label: label, values: func(s *entity.Survey) []string {
		if get(s) {
			return []string{YesToken}
		}
		return nil
	}}
}

func text(label string, get func(*entity.Survey) entity.Text) field {
	return field{label: label, values: func(s *entity.Survey) []string {
		if v := get(s); !v.Blank() {
			return []string{strings.TrimSpace(v.String())}
		}
		return nil
	}}
}

var fields = []field{
	choice("No_plastic_straws", func(s *entity.Survey) entity.Tokens { return s.NoPlasticStraws }),
	choice("No_plastic_bags", func(s *entity.Survey) entity.Tokens { return s.NoPlasticBags }),
	choice("No_plastic_bottles", func(s *entity.Survey) entity.Tokens { return s.NoPlasticBottles }),
	choice("BYO_container_discount", func(s *entity.Survey) entity.Tokens { return s.BYOContainerDiscount }),
	text("BYOC_discount_amount", func(s *entity.Survey) entity.Text { return s.BYOCDiscountAmount }),
	choice("Free_drinking_water", func(s *entity.Survey) entity.Tokens { return s.FreeDrinkingWater }),
	choice("Green_delivery", func(s *entity.Survey) entity.Tokens { return s.GreenDelivery }),
	checkbox("Delivery_only", func(s *entity.Survey) entity.Checkbox { return s.DeliveryOnly }),
	choice("Dine_in_straws", func(s *entity.Survey) entity.Tokens { return s.DineInStraws }),
	choice("Dine_in_utensils", func(s *entity.Survey) entity.Tokens { return s.DineInUtensils }),
	choice("Dine_in_napkins", func(s *entity.Survey) entity.Tokens { return s.DineInNapkins }),
	choice("Dine_in_drink_containers", func(s *entity.Survey) entity.Tokens { return s.DineInDrinkContainers }),
	choice("Dine_in_cups", func(s *entity.Survey) entity.Tokens { return s.DineInCups }),
	choice("Dine_in_drink_stirrers", func(s *entity.Survey) entity.Tokens { return s.DineInDrinkStirrers }),
	choice("Dine_in_linens__table_or_placemats_", func(s *entity.Survey) entity.Tokens { return s.DineInLinens }),
	choice("Dine_in_dishes", func(s *entity.Survey) entity.Tokens { return s.DineInDishes }),
	choice("Restroom_hand_towels", func(s *entity.Survey) entity.Tokens { return s.RestroomHandTowels }),
	choice("Take_out_bags", func(s *entity.Survey) entity.Tokens { return s.TakeOutBags }),
	choice("Take_out_containers", func(s *entity.Survey) entity.Tokens { return s.TakeOutContainers }),
	choice("Take_out_cups", func(s *entity.Survey) entity.Tokens { return s.TakeOutCups }),
	choice("Take_out_container_lids", func(s *entity.Survey) entity.Tokens { return s.TakeOutContainerLids }),
	choice("Take_out_cup_lids", func(s *entity.Survey) entity.Tokens { return s.TakeOutCupLids }),
	choice("Take_out_straws", func(s *entity.Survey) entity.Tokens { return s.TakeOutStraws }),
	choice("Take_out_cup_carriers", func(s *entity.Survey) entity.Tokens { return s.TakeOutCupCarriers }),
	choice("Take_out_cup_sleeves", func(s *entity.Survey) entity.Tokens { return s.TakeOutCupSleeves }),
	choice("Take_out_food_wrapping", func(s *entity.Survey) entity.Tokens { return s.TakeOutFoodWrapping }),
	choice("Kitchen_piping_bags", func(s *entity.Survey) entity.Tokens { return s.KitchenPipingBags }),
	choice("Kitchen_pan_liners", func(s *entity.Survey) entity.Tokens { return s.KitchenPanLiners }),
	choice("Kitchen_food_wrapping", func(s *entity.Survey) entity.Tokens { return s.KitchenFoodWrapping }),
	choice("Kitchen_gloves", func(s *entity.Survey) entity.Tokens { return s.KitchenGloves }),
	choice("Kitchen_food_freeze_packaging", func(s *entity.Survey) entity.Tokens { return s.KitchenFreezePackage }),
	choice("Kitchen_waste_management", func(s *entity.Survey) entity.Tokens { return s.KitchenWaste }),
	choice("Food_waste_programs", func(s *entity.Survey) entity.Tokens { return s.FoodWastePrograms }),
	choice("Menu", func(s *entity.Survey) entity.Tokens { return s.Menu }),
	text("Miscellaneous", func(s *entity.Survey) entity.Text { return s.Miscellaneous }),
}

// Labels returns every field label in display order.
func Labels() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.label)
	}
	return out
}

// ExtractDetails returns one row per non-empty field of s, in display order.
func ExtractDetails(s *entity.Survey) []Detail {
	out := make([]Detail, 0, len(fields))
	if s == nil {
		return out
	}
	for _, f := range fields {
		values := f.values(s)
		if len(values) == 0 {
			continue
		}
		out = append(out, Detail{Label: f.label, Values: values})
	}
	return out
}
