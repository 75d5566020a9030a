// Package catalog holds the static stage and character reference data the
// viewers render and the transports validate against.
package catalog

// Stage is one selectable stage descriptor.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Character is one playable character descriptor.
type Character struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Stages is the full legal stage list. The first five are the game 1
// starters; the whole list is the game 2+ counterpick pool.
var Stages = []Stage{
	{ID: "battlefield", Name: "Battlefield", Image: "/images/stages/battlefield.png"},
	{ID: "small-battlefield", Name: "Small Battlefield", Image: "/images/stages/small-battlefield.png"},
	{ID: "pokemon-stadium-2", Name: "Pokémon Stadium 2", Image: "/images/stages/pokemon-stadium-2.png"},
	{ID: "smashville", Name: "Smashville", Image: "/images/stages/smashville.png"},
	{ID: "town-and-city", Name: "Town and City", Image: "/images/stages/town-and-city.png"},
	{ID: "hollow-bastion", Name: "Hollow Bastion", Image: "/images/stages/hollow-bastion.png"},
	{ID: "final-destination", Name: "Final Destination", Image: "/images/stages/final-destination.png"},
	{ID: "kalos", Name: "Kalos Pokémon League", Image: "/images/stages/kalos.png"},
}

const starterCount = 5

var Characters = []Character{
	{ID: "mario", Name: "Mario", Image: "/images/characters/mario.png"},
	{ID: "donkey-kong", Name: "Donkey Kong", Image: "/images/characters/donkey-kong.png"},
	{ID: "link", Name: "Link", Image: "/images/characters/link.png"},
	{ID: "samus", Name: "Samus", Image: "/images/characters/samus.png"},
	{ID: "yoshi", Name: "Yoshi", Image: "/images/characters/yoshi.png"},
	{ID: "kirby", Name: "Kirby", Image: "/images/characters/kirby.png"},
	{ID: "fox", Name: "Fox", Image: "/images/characters/fox.png"},
	{ID: "pikachu", Name: "Pikachu", Image: "/images/characters/pikachu.png"},
	{ID: "luigi", Name: "Luigi", Image: "/images/characters/luigi.png"},
	{ID: "ness", Name: "Ness", Image: "/images/characters/ness.png"},
	{ID: "captain-falcon", Name: "Captain Falcon", Image: "/images/characters/captain-falcon.png"},
	{ID: "jigglypuff", Name: "Jigglypuff", Image: "/images/characters/jigglypuff.png"},
	{ID: "peach", Name: "Peach", Image: "/images/characters/peach.png"},
	{ID: "bowser", Name: "Bowser", Image: "/images/characters/bowser.png"},
	{ID: "ice-climbers", Name: "Ice Climbers", Image: "/images/characters/ice-climbers.png"},
	{ID: "sheik", Name: "Sheik", Image: "/images/characters/sheik.png"},
	{ID: "zelda", Name: "Zelda", Image: "/images/characters/zelda.png"},
	{ID: "dr-mario", Name: "Dr. Mario", Image: "/images/characters/dr-mario.png"},
	{ID: "pichu", Name: "Pichu", Image: "/images/characters/pichu.png"},
	{ID: "falco", Name: "Falco", Image: "/images/characters/falco.png"},
	{ID: "marth", Name: "Marth", Image: "/images/characters/marth.png"},
	{ID: "young-link", Name: "Young Link", Image: "/images/characters/young-link.png"},
	{ID: "ganondorf", Name: "Ganondorf", Image: "/images/characters/ganondorf.png"},
	{ID: "mewtwo", Name: "Mewtwo", Image: "/images/characters/mewtwo.png"},
	{ID: "roy", Name: "Roy", Image: "/images/characters/roy.png"},
	{ID: "mr-game-and-watch", Name: "Mr. Game & Watch", Image: "/images/characters/mr-game-and-watch.png"},
	{ID: "meta-knight", Name: "Meta Knight", Image: "/images/characters/meta-knight.png"},
	{ID: "pit", Name: "Pit", Image: "/images/characters/pit.png"},
	{ID: "zero-suit-samus", Name: "Zero Suit Samus", Image: "/images/characters/zero-suit-samus.png"},
	{ID: "wario", Name: "Wario", Image: "/images/characters/wario.png"},
	{ID: "snake", Name: "Snake", Image: "/images/characters/snake.png"},
	{ID: "ike", Name: "Ike", Image: "/images/characters/ike.png"},
	{ID: "pokemon-trainer", Name: "Pokémon Trainer", Image: "/images/characters/pokemon-trainer.png"},
	{ID: "diddy-kong", Name: "Diddy Kong", Image: "/images/characters/diddy-kong.png"},
	{ID: "lucas", Name: "Lucas", Image: "/images/characters/lucas.png"},
	{ID: "sonic", Name: "Sonic", Image: "/images/characters/sonic.png"},
	{ID: "king-dedede", Name: "King Dedede", Image: "/images/characters/king-dedede.png"},
	{ID: "olimar", Name: "Olimar", Image: "/images/characters/olimar.png"},
	{ID: "lucario", Name: "Lucario", Image: "/images/characters/lucario.png"},
	{ID: "rob", Name: "R.O.B.", Image: "/images/characters/rob.png"},
	{ID: "toon-link", Name: "Toon Link", Image: "/images/characters/toon-link.png"},
	{ID: "wolf", Name: "Wolf", Image: "/images/characters/wolf.png"},
	{ID: "villager", Name: "Villager", Image: "/images/characters/villager.png"},
	{ID: "mega-man", Name: "Mega Man", Image: "/images/characters/mega-man.png"},
	{ID: "wii-fit-trainer", Name: "Wii Fit Trainer", Image: "/images/characters/wii-fit-trainer.png"},
	{ID: "rosalina", Name: "Rosalina & Luma", Image: "/images/characters/rosalina.png"},
	{ID: "little-mac", Name: "Little Mac", Image: "/images/characters/little-mac.png"},
	{ID: "greninja", Name: "Greninja", Image: "/images/characters/greninja.png"},
	{ID: "palutena", Name: "Palutena", Image: "/images/characters/palutena.png"},
	{ID: "pac-man", Name: "Pac-Man", Image: "/images/characters/pac-man.png"},
	{ID: "robin", Name: "Robin", Image: "/images/characters/robin.png"},
	{ID: "shulk", Name: "Shulk", Image: "/images/characters/shulk.png"},
	{ID: "bowser-jr", Name: "Bowser Jr.", Image: "/images/characters/bowser-jr.png"},
	{ID: "duck-hunt", Name: "Duck Hunt", Image: "/images/characters/duck-hunt.png"},
	{ID: "ryu", Name: "Ryu", Image: "/images/characters/ryu.png"},
	{ID: "ken", Name: "Ken", Image: "/images/characters/ken.png"},
	{ID: "cloud", Name: "Cloud", Image: "/images/characters/cloud.png"},
	{ID: "corrin", Name: "Corrin", Image: "/images/characters/corrin.png"},
	{ID: "bayonetta", Name: "Bayonetta", Image: "/images/characters/bayonetta.png"},
	{ID: "inkling", Name: "Inkling", Image: "/images/characters/inkling.png"},
	{ID: "ridley", Name: "Ridley", Image: "/images/characters/ridley.png"},
	{ID: "king-k-rool", Name: "King K. Rool", Image: "/images/characters/king-k-rool.png"},
	{ID: "isabelle", Name: "Isabelle", Image: "/images/characters/isabelle.png"},
	{ID: "incineroar", Name: "Incineroar", Image: "/images/characters/incineroar.png"},
	{ID: "joker", Name: "Joker", Image: "/images/characters/joker.png"},
	{ID: "hero", Name: "Hero", Image: "/images/characters/hero.png"},
	{ID: "banjo-kazooie", Name: "Banjo & Kazooie", Image: "/images/characters/banjo-kazooie.png"},
	{ID: "terry", Name: "Terry", Image: "/images/characters/terry.png"},
	{ID: "byleth", Name: "Byleth", Image: "/images/characters/byleth.png"},
	{ID: "min-min", Name: "Min Min", Image: "/images/characters/min-min.png"},
	{ID: "steve", Name: "Steve", Image: "/images/characters/steve.png"},
	{ID: "sephiroth", Name: "Sephiroth", Image: "/images/characters/sephiroth.png"},
	{ID: "pyra-mythra", Name: "Pyra/Mythra", Image: "/images/characters/pyra-mythra.png"},
	{ID: "kazuya", Name: "Kazuya", Image: "/images/characters/kazuya.png"},
	{ID: "sora", Name: "Sora", Image: "/images/characters/sora.png"},
}

var stagesByID = indexStages()
var charactersByID = indexCharacters()

func indexStages() map[string]Stage {
	m := make(map[string]Stage, len(Stages))
	for _, st := range Stages {
		m[st.ID] = st
	}
	return m
}

func indexCharacters() map[string]Character {
	m := make(map[string]Character, len(Characters))
	for _, c := range Characters {
		m[c.ID] = c
	}
	return m
}

// StarterStageIDs is the game 1 candidate pool.
func StarterStageIDs() []string {
	ids := make([]string, 0, starterCount)
	for _, st := range Stages[:starterCount] {
		ids = append(ids, st.ID)
	}
	return ids
}

// CounterpickStageIDs is the game 2+ candidate pool before DSR exclusions.
func CounterpickStageIDs() []string {
	ids := make([]string, 0, len(Stages))
	for _, st := range Stages {
		ids = append(ids, st.ID)
	}
	return ids
}

// StagesForGame returns descriptors for the game's candidate pool.
func StagesForGame(game int) []Stage {
	if game <= 1 {
		return append([]Stage{}, Stages[:starterCount]...)
	}
	return append([]Stage{}, Stages...)
}

func StageByID(id string) (Stage, bool) {
	st, ok := stagesByID[id]
	return st, ok
}

func CharacterByID(id string) (Character, bool) {
	c, ok := charactersByID[id]
	return c, ok
}

func IsCharacter(id string) bool {
	_, ok := charactersByID[id]
	return ok
}
