package sim

const bulletSpritePath = "sprites/bullet.txt"

// Bullet はフィールド上の弾丸です。
// 一度画面外に出るか何かに命中すると死亡し、どちらのフラグも戻らない。
type Bullet struct {
	Entity
	offScreen    bool
	hitSomething bool
}

func NewBullet(x, y float64, loader SpriteLoader) (*Bullet, error) {
	b := &Bullet{}
	if err := b.init(x, y, loader, b.SpritePath(), b); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBulletWithRadius はスプライト寸法によらず当たり判定半径を指定して生成します。
func NewBulletWithRadius(x, y float64, loader SpriteLoader, radius float64) (*Bullet, error) {
	b := &Bullet{}
	if err := b.initWithRadius(x, y, loader, b.SpritePath(), b, radius); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bullet) SpritePath() string { return bulletSpritePath }

// stepBehaviour は画面外判定を行います。offScreenは一方向ラッチで、
// その後ビューポートに戻っても解除されない。
func (b *Bullet) stepBehaviour(tick Tick) {
	if b.X > tick.Width || b.X < 0 || b.Y > tick.Height || b.Y < 0 {
		b.offScreen = true
	}
}

func (b *Bullet) IsDead() bool { return b.offScreen || b.hitSomething }

func (b *Bullet) OffScreen() bool { return b.offScreen }

// MarkHit は外部の衝突解決パスから命中を記録します。一方向の遷移。
func (b *Bullet) MarkHit() { b.hitSomething = true }
