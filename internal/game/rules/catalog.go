package rules

func intPtr(v int) *int { return &v }

// DefaultItems returns the built-in item catalog. Hosts may extend or
// replace it with LoadItems.
func DefaultItems() []*ItemDef {
	return []*ItemDef{
		{
			Key:    "leather_armor",
			NameRU: "Кожаная броня",
			Kind:   KindArmor,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotBody},
				ArmorCategory: ArmorLight,
				BaseAC:        11,
			},
			DescriptionRU: "Базовая легкая броня.",
		},
		{
			Key:    "scale_mail",
			NameRU: "Чешуйчатый доспех",
			Kind:   KindArmor,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotBody},
				ArmorCategory: ArmorMedium,
				BaseAC:        14,
			},
			DescriptionRU: "Средняя броня из металлических пластин.",
		},
		{
			Key:    "half_plate",
			NameRU: "Полулаты",
			Kind:   KindArmor,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotBody},
				ArmorCategory: ArmorMedium,
				BaseAC:        15,
				DexCap:        intPtr(3),
			},
			DescriptionRU: "Тяжелее чешуи, но подвижнее лат.",
		},
		{
			Key:    "chain_mail",
			NameRU: "Кольчуга",
			Kind:   KindArmor,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotBody},
				ArmorCategory: ArmorHeavy,
				BaseAC:        16,
				StrReq:        13,
			},
			DescriptionRU: "Тяжелая металлическая броня.",
		},
		{
			Key:    "shield",
			NameRU: "Щит",
			Kind:   KindShield,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotOffHand},
				GrantsACBonus: 2,
			},
			DescriptionRU: "Базовый щит для дополнительной защиты.",
		},
		{
			Key:    "dagger",
			NameRU: "Кинжал",
			Kind:   KindWeapon,
			Equip: &EquipSpec{
				AllowedSlots: []Slot{SlotMainHand, SlotOffHand},
				Weapon: &WeaponStats{
					DamageDice:  "1d4",
					DamageType:  "piercing",
					Properties:  []string{"finesse", "light", "thrown"},
					RangeNormal: 20,
					RangeLong:   60,
					Mastery:     "nick",
				},
			},
			DescriptionRU: "Короткое легкое оружие ближнего боя.",
		},
		{
			Key:    "longsword",
			NameRU: "Длинный меч",
			Kind:   KindWeapon,
			Equip: &EquipSpec{
				AllowedSlots: []Slot{SlotMainHand, SlotOffHand},
				Weapon: &WeaponStats{
					DamageDice: "1d8",
					DamageType: "slashing",
					Properties: []string{"versatile"},
					Mastery:    "sap",
				},
			},
			DescriptionRU: "Надежное одноручное оружие.",
		},
		{
			Key:    "shortbow",
			NameRU: "Короткий лук",
			Kind:   KindWeapon,
			Equip: &EquipSpec{
				AllowedSlots: []Slot{SlotMainHand},
				TwoHanded:    true,
				Weapon: &WeaponStats{
					DamageDice:  "1d6",
					DamageType:  "piercing",
					Properties:  []string{"ammunition", "two-handed"},
					RangeNormal: 80,
					RangeLong:   320,
					Mastery:     "vex",
				},
			},
			DescriptionRU: "Легкое двуручное дальнобойное оружие.",
		},
		{
			Key:    "traveler_cloak",
			NameRU: "Плащ путника",
			Kind:   KindAccessory,
			Equip: &EquipSpec{
				AllowedSlots:  []Slot{SlotBack},
				ArmorCategory: ArmorClothing,
			},
			DescriptionRU: "Защищает от дождя и пыли в дороге.",
		},
		{
			Key:           "silver_ring",
			NameRU:        "Серебряное кольцо",
			Kind:          KindAccessory,
			Equip:         &EquipSpec{AllowedSlots: []Slot{SlotRingLeft, SlotRingRight}},
			DescriptionRU: "Простое кольцо без магических свойств.",
		},
		{
			Key:           "healing_potion",
			NameRU:        "Зелье лечения",
			Kind:          KindConsumable,
			Stackable:     true,
			MaxStack:      10,
			Consume:       &ConsumeSpec{HealDice: "2d4+2"},
			DescriptionRU: "Восстанавливает немного здоровья.",
		},
		{
			Key:           "greater_healing_potion",
			NameRU:        "Большое зелье лечения",
			Kind:          KindConsumable,
			Stackable:     true,
			MaxStack:      10,
			Consume:       &ConsumeSpec{HealDice: "4d4+4"},
			DescriptionRU: "Восстанавливает значительное количество здоровья.",
		},
		{
			Key:           "quest_key",
			NameRU:        "Квестовый ключ",
			Kind:          KindQuest,
			DescriptionRU: "Ключ от важной двери по заданию.",
		},
	}
}

// DefaultItemTable builds an ItemTable from the built-in catalog.
//
// Postcondition: never returns an error for the compiled-in defaults.
func DefaultItemTable() *ItemTable {
	t, err := NewItemTable(DefaultItems())
	if err != nil {
		panic("rules: default item catalog invalid: " + err.Error())
	}
	return t
}
