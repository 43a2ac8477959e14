package sim

import "testing"

func TestDrifter_NewNotDead(t *testing.T) {
	d, err := NewDrifter(50, 1, stubLoader{width: 5, height: 3})
	if err != nil {
		t.Fatalf("NewDrifter failed: %v", err)
	}
	if d.IsDead() {
		t.Error("new drifter should not be dead")
	}
	if d.HP() != DrifterHP {
		t.Errorf("HP = %d, want %d", d.HP(), DrifterHP)
	}
}

func TestDrifter_DescendsAndOscillates(t *testing.T) {
	d, err := NewDrifter(50, 1, stubLoader{width: 5, height: 3})
	if err != nil {
		t.Fatalf("NewDrifter failed: %v", err)
	}

	tick := Tick{Delta: 1.0 / 60, Width: 100, Height: 1000}
	startY := d.Y
	minX, maxX := d.X, d.X
	for range 600 {
		d.Step(tick)
		minX = min(minX, d.X)
		maxX = max(maxX, d.X)
	}

	if d.Y <= startY {
		t.Errorf("drifter should descend: Y = %f, start = %f", d.Y, startY)
	}
	if minX == maxX {
		t.Error("drifter should strafe horizontally")
	}
}

func TestEnemy_Damage(t *testing.T) {
	d, err := NewDrifter(50, 1, stubLoader{width: 5, height: 3})
	if err != nil {
		t.Fatalf("NewDrifter failed: %v", err)
	}

	d.Damage(DrifterHP / 2)
	if d.IsDead() {
		t.Error("drifter should survive partial damage")
	}
	if d.HP() != DrifterHP-DrifterHP/2 {
		t.Errorf("HP = %d, want %d", d.HP(), DrifterHP-DrifterHP/2)
	}

	// 過剰ダメージでもHPは0で止まる
	d.Damage(1000)
	if d.HP() != 0 {
		t.Errorf("HP = %d, want 0", d.HP())
	}
	if !d.IsDead() {
		t.Error("drifter should be dead at 0 HP")
	}
}

func TestEnemy_EscapedLatch(t *testing.T) {
	d, err := NewDrifter(50, 1, stubLoader{width: 5, height: 3})
	if err != nil {
		t.Fatalf("NewDrifter failed: %v", err)
	}

	tick := Tick{Delta: 1.0 / 60, Width: 100, Height: 40}
	d.Y = 41
	d.Step(tick)
	if !d.IsDead() {
		t.Error("enemy below the viewport should be dead")
	}

	// 戻しても復活しない
	d.Y = 20
	d.Step(tick)
	if !d.IsDead() {
		t.Error("escaped latch must not reset")
	}
}

func TestDiver_DivesAndEscapes(t *testing.T) {
	v, err := NewDiver(50, 1, stubLoader{width: 3, height: 3})
	if err != nil {
		t.Fatalf("NewDiver failed: %v", err)
	}

	tick := Tick{Delta: 1.0 / 60, Width: 100, Height: 40}
	steps := 0
	for !v.IsDead() && steps < 100000 {
		v.Step(tick)
		steps++
	}

	if !v.IsDead() {
		t.Fatal("diver should eventually fall off the stage")
	}
	if !v.Diving() {
		t.Error("diver should have entered the dive before escaping")
	}
	if v.YAccel <= 0 {
		t.Errorf("YAccel = %f, want > 0 while diving", v.YAccel)
	}
}
