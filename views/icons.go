package views

import "tripview/models"

// Icon names a glyph from the page's icon set.
type Icon string

const (
	IconPlane    Icon = "plane"
	IconUtensils Icon = "utensils"
	IconHome     Icon = "home"
	IconMapPin   Icon = "map-pin"
	IconClock    Icon = "clock"
)

// DefaultIcon is shown for activity kinds outside the known set.
const DefaultIcon = IconMapPin

var activityIcons = map[models.ActivityKind]Icon{
	models.KindTransfer: IconPlane,
	models.KindFood:     IconUtensils,
	models.KindLodging:  IconHome,
	models.KindActivity: IconMapPin,
	models.KindFreeTime: IconClock,
}

// IconFor maps an activity kind to its icon. Unknown kinds get DefaultIcon.
func IconFor(kind models.ActivityKind) Icon {
	if icon, ok := activityIcons[kind]; ok {
		return icon
	}
	return DefaultIcon
}
