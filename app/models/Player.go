package models

// Player is a seat at a game table as stored in postgres.
type Player struct {
	User_id  string `pg:",pk"`
	Game_id  string `pg:",pk"`
	Username string
	Seat     int
}

type PlayerDto struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	Balance    int    `json:"balance"`
	Pos        int    `json:"pos"`
	Properties []int  `json:"properties"`
	Jail       bool   `json:"jail"`
	JailTurns  int    `json:"jail_turns"`
	JailCards  int    `json:"jail_cards"`
	Bankrupt   bool   `json:"bankrupt"`
}
