package models

import "testing"

func TestDeltaShallowMerge(t *testing.T) {
	g := GameState{
		ID:     "g1",
		Type:   "75ball",
		Status: GameWaiting,
		Stake:  25,
		Players: []Player{
			{ID: "p1", Name: "Abebe", Stake: 25, Status: PlayerReady},
			{ID: "p2", Name: "Kebede", Stake: 25, Status: PlayerWaiting},
		},
		CalledNumbers: []int{4, 17},
	}

	status := GameRunning
	d := GameStateDelta{Status: &status}
	d.Apply(&g)

	if g.Status != GameRunning {
		t.Fatalf("status not applied: %s", g.Status)
	}
	if len(g.Players) != 2 {
		t.Fatalf("players must survive a partial update, got %d", len(g.Players))
	}
	if g.Stake != 25 {
		t.Fatalf("stake must survive a partial update, got %d", g.Stake)
	}
	if len(g.CalledNumbers) != 2 {
		t.Fatalf("calledNumbers must survive a partial update, got %v", g.CalledNumbers)
	}
	if g.ID != "g1" || g.Type != "75ball" {
		t.Fatal("untouched fields changed")
	}
}

func TestDeltaFullReplace(t *testing.T) {
	g := GameState{ID: "g1", Stake: 25, Players: []Player{{ID: "p1"}}}

	id := "g2"
	stake := 50
	players := []Player{}
	d := GameStateDelta{ID: &id, Stake: &stake, Players: &players}
	d.Apply(&g)

	if g.ID != "g2" || g.Stake != 50 || len(g.Players) != 0 {
		t.Fatalf("delta fields not applied: %+v", g)
	}
}

func TestValidateJoin(t *testing.T) {
	cases := []struct {
		name string
		info PlayerInfo
		err  error
	}{
		{"valid", PlayerInfo{Name: "Abebe", Phone: "0911223344", Stake: 25}, nil},
		{"missing name", PlayerInfo{Phone: "0911223344", Stake: 25}, ErrNameRequired},
		{"short phone", PlayerInfo{Name: "Abebe", Phone: "0911", Stake: 25}, ErrPhoneTooShort},
		{"zero stake", PlayerInfo{Name: "Abebe", Phone: "0911223344"}, ErrInvalidStake},
	}
	for _, tc := range cases {
		if err := tc.info.ValidateJoin(); err != tc.err {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

func TestFindPlayer(t *testing.T) {
	g := GameState{Players: []Player{{ID: "p1", Balance: 100}}}
	if p := g.FindPlayer("p1"); p == nil || p.Balance != 100 {
		t.Fatal("expected to find p1")
	}
	if p := g.FindPlayer("nope"); p != nil {
		t.Fatal("expected nil for an unknown id")
	}
}
