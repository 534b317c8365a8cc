package models

import (
	"strings"
)

type ListingType string

const (
	ListingTypeSeek  ListingType = "seek"
	ListingTypeOffer ListingType = "offer"
)

func ParseListingType(value string) (ListingType, bool) {
	switch ListingType(strings.ToLower(strings.TrimSpace(value))) {
	case ListingTypeSeek:
		return ListingTypeSeek, true
	case ListingTypeOffer:
		return ListingTypeOffer, true
	}
	return "", false
}

func ListingTypeFromOffer(isAccommodationOffer bool) ListingType {
	if isAccommodationOffer {
		return ListingTypeOffer
	}
	return ListingTypeSeek
}

func (lt ListingType) IsOffer() bool {
	return lt == ListingTypeOffer
}

func (lt ListingType) Label() string {
	if lt.IsOffer() {
		return "Host offering accommodation"
	}
	return "Traveler seeking accommodation"
}

// OrientSkills translates the listing form's offered/desired skill fields
// into the owner-oriented pair stored on SkillSwap. The form labels are
// reversed for hosts, so an offer listing swaps the two inputs.
func OrientSkills(lt ListingType, offeredSkill, desiredSkill string) (skillOffered, skillWanted string) {
	if lt.IsOffer() {
		return desiredSkill, offeredSkill
	}
	return offeredSkill, desiredSkill
}

// FormSkills is the read side of OrientSkills, used to pre-populate the edit
// form. The mapping is its own inverse.
func FormSkills(lt ListingType, skillOffered, skillWanted string) (offeredSkill, desiredSkill string) {
	return OrientSkills(lt, skillOffered, skillWanted)
}
