package combat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAir(t *testing.T) {
	tests := []struct {
		name      string
		you, them float64
		want      Outcome
	}{
		{"stronger air wins", 450, 100, Win},
		{"weaker air loses", 100, 450, Loss},
		{"equal air draws", 200, 200, Draw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAir(Snapshot{PlanesAir: tt.you}, Snapshot{PlanesAir: tt.them})
			require.Equal(t, tt.want, got.Outcome)
			require.Equal(t, tt.you, got.YourAir)
			require.Equal(t, tt.them, got.EnemyAir)
		})
	}
}

func TestGroundLosers(t *testing.T) {
	you := Snapshot{PlanesSurface: 150}
	enemy := Snapshot{PlanesSurface: 50}

	y, e := GroundLosers(AirWon, you, enemy)
	require.Equal(t, float64(150), y.PlanesSurface)
	require.Zero(t, e.PlanesSurface)

	y, e = GroundLosers(AirLost, you, enemy)
	require.Zero(t, y.PlanesSurface)
	require.Equal(t, float64(50), e.PlanesSurface)

	y, e = GroundLosers(AirDraw, you, enemy)
	require.Zero(t, y.PlanesSurface)
	require.Zero(t, e.PlanesSurface)
}

func TestResolveSurfaceCoin(t *testing.T) {
	you := Snapshot{Tanks: 60, Squads: 40, PlanesSurface: 500}
	enemy := Snapshot{Tanks: 50, Squads: 50, PlanesSurface: 500}

	tests := []struct {
		name      string
		coin      float64
		wantYou   float64
		wantEnemy float64
		want      Outcome
	}{
		{"high coin favours caller", 0.75, 105, 100, Win},
		{"threshold 0.7 favours caller", 0.7, 105, 100, Win},
		{"low coin favours enemy", 0.35, 100, 105, Loss},
		{"threshold 0.4 favours enemy", 0.4, 100, 105, Loss},
		{"middle coin is neutral", 0.55, 100, 100, Draw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSurface(AirDraw, you, enemy, tt.coin)
			require.InDelta(t, tt.wantYou, got.YourTotal, 1e-9)
			require.InDelta(t, tt.wantEnemy, got.EnemyTotal, 1e-9)
			require.Equal(t, tt.want, got.Outcome)
			require.Equal(t, tt.coin, got.Coin)
		})
	}
}

func TestResolveSurfaceAfterAirWin(t *testing.T) {
	a := Snapshot{Tanks: 150, PlanesAir: 300, PlanesSurface: 100, Squads: 50, Advantage: AdvantageAir}
	b := Snapshot{Tanks: 100, PlanesAir: 100, PlanesSurface: 50, Squads: 80, Advantage: AdvantageHeavyTech}
	a, b = ApplyAdvantages(a, b)

	air := ResolveAir(a, b)
	require.Equal(t, Win, air.Outcome)

	prior, err := InProgress.AfterAir(air.Outcome)
	require.NoError(t, err)

	got := ResolveSurface(prior, a, b, 0.55)
	require.Equal(t, float64(150+150+50), got.YourTotal)
	require.Equal(t, float64(0+150+80), got.EnemyTotal, "enemy surface planes are grounded")
	require.Equal(t, Win, got.Outcome)
}

func TestFixedCoin(t *testing.T) {
	var src CoinSource = FixedCoin(0.42)
	require.Equal(t, 0.42, src.Float64())
}

func TestNewRandomCoinSeeded(t *testing.T) {
	a := NewRandomCoin(7)
	b := NewRandomCoin(7)
	for range 5 {
		v := a.Float64()
		require.Equal(t, v, b.Float64())
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestSnapshotCanFight(t *testing.T) {
	require.True(t, Snapshot{Tanks: 1, PlanesAir: 1, Squads: 1}.CanFight())
	require.False(t, Snapshot{Tanks: 1, PlanesAir: 1}.CanFight(), "squads without weapons count as zero")
	require.False(t, Snapshot{Tanks: 1, Squads: 1, PlanesSurface: 5}.CanFight(), "surface-only planes are not enough")
}
