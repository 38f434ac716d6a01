// Package rules holds the static ruleset consumed by the combat engine:
// equipment slots, item and enemy catalogs, derived attack profiles,
// loot tables, reward math, and defeat outcomes.
package rules

// Slot identifies an equipment slot on a combatant.
// The string values are stable keys for storage and exchange.
type Slot string

const (
	SlotHead      Slot = "head"
	SlotNeck      Slot = "neck"
	SlotShoulders Slot = "shoulders"
	SlotBody      Slot = "body"
	SlotBack      Slot = "back"
	SlotBelt      Slot = "belt"
	SlotHands     Slot = "hands"
	SlotWrists    Slot = "wrists"
	SlotRingLeft  Slot = "ring_left"
	SlotRingRight Slot = "ring_right"
	SlotLegs      Slot = "legs"
	SlotFeet      Slot = "feet"
	SlotMainHand  Slot = "main_hand"
	SlotOffHand   Slot = "off_hand"
	SlotRanged    Slot = "ranged"
	SlotArtifact  Slot = "artifact"
)

// WeaponSlots lists the slots inspected when deriving an attack profile,
// in priority order.
var WeaponSlots = [...]Slot{SlotMainHand, SlotRanged, SlotOffHand}

// RingSlots lists the two ring slots.
var RingSlots = [...]Slot{SlotRingLeft, SlotRingRight}

// slotLabelsRU maps slots to the labels shown in the character profile UI.
var slotLabelsRU = map[Slot]string{
	SlotHead:      "Голова",
	SlotNeck:      "Шея",
	SlotShoulders: "Плечи",
	SlotBody:      "Тело",
	SlotBack:      "Спина",
	SlotBelt:      "Пояс",
	SlotHands:     "Руки",
	SlotWrists:    "Запястья",
	SlotRingLeft:  "Кольцо (лев.)",
	SlotRingRight: "Кольцо (прав.)",
	SlotLegs:      "Ноги",
	SlotFeet:      "Ступни",
	SlotMainHand:  "Основная рука",
	SlotOffHand:   "Вторая рука",
	SlotRanged:    "Дальний слот",
	SlotArtifact:  "Артефакт",
}

// LabelRU returns the Russian UI label for slot, falling back to the raw
// slot value for unknown slots.
func LabelRU(slot Slot) string {
	if label, ok := slotLabelsRU[slot]; ok {
		return label
	}
	return string(slot)
}
