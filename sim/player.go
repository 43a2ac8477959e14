package sim

const (
	playerSpritePath = "sprites/player.txt"

	PlayerMaxHP       = 100
	PlayerLives       = 3
	RespawnTicks      = 180 // 3秒 @60FPS
	FireCooldownTicks = 30  // 0.5秒 @60FPS
	PlayerSpeed       = 0.8 // 1tickあたりの移動量（セル）
)

// Player はセッションが操作する自機です。
// HPが尽きると残機を消費してリスポーンし、残機が尽きると死亡（除去対象）になる。
type Player struct {
	Entity
	hp       int
	lives    int
	respawn  int // 残リスポーンtick。0なら生存状態
	cooldown int
}

func NewPlayer(x, y float64, loader SpriteLoader) (*Player, error) {
	p := &Player{
		hp:    PlayerMaxHP,
		lives: PlayerLives,
	}
	if err := p.init(x, y, loader, p.SpritePath(), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) SpritePath() string { return playerSpritePath }

// stepBehaviour はクールダウンとリスポーンタイマーを進めます。
func (p *Player) stepBehaviour(tick Tick) {
	if p.cooldown > 0 {
		p.cooldown--
	}
	if p.respawn > 0 {
		p.respawn--
		if p.respawn == 0 {
			p.hp = PlayerMaxHP
		}
	}
}

func (p *Player) HP() int    { return p.hp }
func (p *Player) Lives() int { return p.lives }

// Alive はリスポーン待ちでなく残機もある状態かを返します。
// リスポーン待ちの自機は被弾対象にならない。
func (p *Player) Alive() bool { return p.respawn == 0 && p.lives > 0 }

func (p *Player) Respawning() bool { return p.respawn > 0 }

// IsDead は残機が尽きたときのみtrueを返します。
func (p *Player) IsDead() bool { return p.lives <= 0 }

// TryFire は発射可能ならクールダウンを開始してtrueを返します。
func (p *Player) TryFire() bool {
	if !p.Alive() || p.cooldown > 0 {
		return false
	}
	p.cooldown = FireCooldownTicks
	return true
}

// Damage は自機にダメージを与えます。HPが尽きると残機を1消費し、
// 残機が残っていればリスポーンタイマーを開始します。
func (p *Player) Damage(n int) {
	if !p.Alive() {
		return
	}
	if n >= p.hp {
		p.hp = 0
		p.lives--
		if p.lives > 0 {
			p.respawn = RespawnTicks
		}
		return
	}
	p.hp -= n
}
