package entity

const (
	KindHuman = "human"
	KindBot   = "bot"
)

type Player struct {
	Name string
	Mark Mark
	Kind string
}

func NewHumanPlayer(mark Mark) *Player {
	return &Player{
		Name: "Human",
		Mark: mark,
		Kind: KindHuman,
	}
}

func NewBotPlayer(mark Mark) *Player {
	return &Player{
		Name: "Computer",
		Mark: mark,
		Kind: KindBot,
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == KindBot
}
