package rules

// isPerson reports whether a kind counts as a "person" payload: infantry,
// militia, engineer, or commander (§3.3 invariant 4).
func isPerson(k Kind) bool {
	return k == Infantry || k == Militia || k == Engineer || k == Commander
}

func isFerryCargo(k Kind) bool {
	return k == AntiAir || k == Artillery || k == Missile
}

// CanStack reports whether mover may land on passenger's square and become
// its carrier, per the capacity table of §3.3 invariant 4.
func CanStack(mover, passenger *Piece, b *Board) bool {
	if mover.Side != passenger.Side {
		return false
	}
	if passenger.Kind == Headquarters || mover.Kind == Headquarters {
		return false // HQ is never carried, and never carries
	}
	if passenger.CarrierID != 0 {
		return false // already carried by someone else
	}
	cargo := b.Carried(mover.ID)

	switch mover.Kind {
	case Navy:
		return navyCanCarry(cargo, passenger.Kind)
	case AirForce:
		if len(cargo) >= 1 {
			return false
		}
		return passenger.Kind == Tank || isPerson(passenger.Kind)
	case Tank:
		if len(cargo) >= 1 {
			return false
		}
		return isPerson(passenger.Kind)
	case Engineer:
		if len(cargo) >= 1 {
			return false
		}
		return isFerryCargo(passenger.Kind)
	default:
		return false
	}
}

func navyCanCarry(cargo []*Piece, addKind Kind) bool {
	if len(cargo) >= 2 {
		return false
	}
	var aircraft, tanks, persons int
	for _, p := range cargo {
		switch {
		case p.Kind == AirForce:
			aircraft++
		case p.Kind == Tank:
			tanks++
		case isPerson(p.Kind):
			persons++
		default:
			return false // navy carries nothing else
		}
	}
	switch {
	case addKind == AirForce:
		aircraft++
	case addKind == Tank:
		tanks++
	case isPerson(addKind):
		persons++
	default:
		return false
	}
	if persons > 1 {
		return false
	}
	if persons == 1 {
		// 1 aircraft + 1 person, or <=1 person alone
		return tanks == 0 && aircraft <= 1
	}
	if tanks > 0 && aircraft > 0 {
		return tanks <= 1 && aircraft <= 1
	}
	if tanks > 0 {
		return tanks <= 2
	}
	if aircraft > 0 {
		return aircraft <= 2
	}
	return true
}

// commanderCarrierAllowed restates invariant 4's last bullet for documentation
// and for assertion code: carried commanders may only ride Tank, AirForce
// or Navy, never Engineer or another Commander-ish carrier.
func commanderCarrierAllowed(carrierKind Kind) bool {
	return carrierKind == Tank || carrierKind == AirForce || carrierKind == Navy
}
