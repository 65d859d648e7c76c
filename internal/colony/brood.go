// Queen flight cycle and the egg → larva → pupa → adult pipeline.
package colony

import (
	"antsim/internal/telemetry"
)

// QueenState tracks the reproduction flight cycle.
type QueenState string

const (
	QueenIdle       QueenState = "idle"
	QueenFlight     QueenState = "nuptial_flight"
	QueenPostFlight QueenState = "post_flight"
)

// CurrentQueenState exposes the flight cycle for snapshots.
func (c *Colony) CurrentQueenState() QueenState { return c.queenState }

// tickQueen advances the nuptial-flight state machine. It only runs once a
// queen exists; the flight itself is a timing contract (the host may
// visualize it), egg laying happens after the post-flight delay.
func (c *Colony) tickQueen(ctx *Context, delta float64) {
	if !c.HasQueen() {
		return
	}
	c.queenTimer += delta
	switch c.queenState {
	case QueenIdle:
		if c.queenTimer < c.Settings.QueenIdle || c.Storage < c.Settings.NuptialCost {
			return
		}
		c.Storage -= c.Settings.NuptialCost
		c.queenState = QueenFlight
		c.queenTimer = 0
		if ctx.Events != nil {
			ctx.Events.Record(telemetry.EventFlight, c.queen.ID, "", c.Home.X, c.Home.Y, 0)
		}
	case QueenFlight:
		if c.queenTimer < c.Settings.FlightDuration {
			return
		}
		c.queenState = QueenPostFlight
		c.queenTimer = 0
	case QueenPostFlight:
		if c.queenTimer < c.Settings.PostFlightDelay {
			return
		}
		batch := 20 + c.rand.Intn(31)
		c.Eggs += batch
		c.queenState = QueenIdle
		c.queenTimer = 0
		if ctx.Events != nil {
			ctx.Events.Record(telemetry.EventEggsLaid, c.queen.ID, "", c.Home.X, c.Home.Y, float64(batch))
		}
	}
}

// tickBrood advances the reproduction stages. Progress is proportional to
// delta/window times the stage count; fractional progress is carried between
// ticks so each individual moves through exactly one stage at a time and the
// pipeline conserves individuals. Later stages also pay a food cost per
// individual; adults emerge as spawned ants in small random batches.
func (c *Colony) tickBrood(ctx *Context, delta float64) {
	// Nurse feedings accelerate the egg stage slightly.
	feedBoost := 1.0 + 0.1*float64(c.broodFeeds)
	if feedBoost > 2 {
		feedBoost = 2
	}
	c.broodFeeds = 0

	// eggs -> larvae: time only.
	c.eggProgress += delta / c.Settings.EggWindow * float64(c.Eggs) * feedBoost
	n := int(c.eggProgress)
	if n > c.Eggs {
		n = c.Eggs
	}
	if n > 0 {
		c.eggProgress -= float64(n)
		c.Eggs -= n
		c.Larvae += n
	}

	// larvae -> pupae: time plus a food cost per individual.
	c.larvaProgress += delta / c.Settings.LarvaWindow * float64(c.Larvae)
	n = int(c.larvaProgress)
	if n > c.Larvae {
		n = c.Larvae
	}
	if c.Settings.LarvaCost > 0 {
		if affordable := int(c.Storage / c.Settings.LarvaCost); n > affordable {
			n = affordable
		}
	}
	if n > 0 {
		c.larvaProgress -= float64(n)
		c.Storage -= float64(n) * c.Settings.LarvaCost
		c.Larvae -= n
		c.Pupae += n
	}

	// pupae -> adults: time plus a larger food cost, bounded by a small
	// random emergence batch and the population cap.
	c.pupaProgress += delta / c.Settings.PupaWindow * float64(c.Pupae)
	n = int(c.pupaProgress)
	if n > c.Pupae {
		n = c.Pupae
	}
	if c.Settings.PupaCost > 0 {
		if affordable := int(c.Storage / c.Settings.PupaCost); n > affordable {
			n = affordable
		}
	}
	if batch := 1 + c.rand.Intn(3); n > batch {
		n = batch
	}
	if room := c.MaxPopulation - len(c.Ants); n > room {
		n = room
	}
	if n <= 0 {
		return
	}
	c.pupaProgress -= float64(n)
	c.Storage -= float64(n) * c.Settings.PupaCost
	c.Pupae -= n
	for i := 0; i < n; i++ {
		role := spawnRoles[c.rand.Intn(len(spawnRoles))]
		a := newAnt(c, role)
		c.Ants = append(c.Ants, a)
		if ctx.Events != nil {
			ctx.Events.Record(telemetry.EventSpawn, a.ID, string(a.Role), a.Pos.X, a.Pos.Y, 1)
		}
	}
}
