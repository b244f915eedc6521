package models

// House — один из шести великих домов, выбирается при создании персонажа.
type House string

const (
	HouseStark     House = "Stark"
	HouseLannister House = "Lannister"
	HouseTargaryen House = "Targaryen"
	HouseBaratheon House = "Baratheon"
	HouseGreyjoy   House = "Greyjoy"
	HouseTyrell    House = "Tyrell"
)

// HouseInfo описывает стартовые параметры дома и его NPC для вводной сцены.
type HouseInfo struct {
	StartingInfluence int
	NPCs              []string
}

// Houses — конфигурационная таблица домов. Стартовое здоровье всегда 100,
// стартовое влияние берется отсюда.
var Houses = map[House]HouseInfo{
	HouseStark: {
		StartingInfluence: 30,
		NPCs:              []string{"Eddard Stark", "Catelyn Stark", "Jon Snow"},
	},
	HouseLannister: {
		StartingInfluence: 60,
		NPCs:              []string{"Tywin Lannister", "Cersei Lannister", "Tyrion Lannister"},
	},
	HouseTargaryen: {
		StartingInfluence: 45,
		NPCs:              []string{"Daenerys Targaryen", "Viserys Targaryen", "Jorah Mormont"},
	},
	HouseBaratheon: {
		StartingInfluence: 50,
		NPCs:              []string{"Robert Baratheon", "Stannis Baratheon", "Renly Baratheon"},
	},
	HouseGreyjoy: {
		StartingInfluence: 25,
		NPCs:              []string{"Balon Greyjoy", "Theon Greyjoy", "Yara Greyjoy"},
	},
	HouseTyrell: {
		StartingInfluence: 55,
		NPCs:              []string{"Olenna Tyrell", "Margaery Tyrell", "Loras Tyrell"},
	},
}

// Valid сообщает, известен ли дом.
func (h House) Valid() bool {
	_, ok := Houses[h]
	return ok
}

// StartingHealth — здоровье любого нового персонажа.
const StartingHealth = 100

// Character — игровой персонаж. Health и Influence всегда в диапазоне [0,100].
type Character struct {
	Name      string `json:"name"`
	House     House  `json:"house"`
	Bio       string `json:"bio"`
	Health    int    `json:"health"`
	Influence int    `json:"influence"`
}

// NewCharacter создает персонажа со стартовыми статами выбранного дома.
func NewCharacter(name string, house House, bio string) Character {
	return Character{
		Name:      name,
		House:     house,
		Bio:       bio,
		Health:    StartingHealth,
		Influence: Houses[house].StartingInfluence,
	}
}
