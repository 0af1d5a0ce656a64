package model

var ContentTypeLabels = map[ContentType]string{
	ContentNovel:     "Novel",
	ContentMusic:     "Music",
	ContentAnime:     "Anime",
	ContentWallpaper: "Wallpaper",
}

var PaymentStatusLabels = map[PaymentStatus]string{
	PaymentPending:   "Awaiting payment",
	PaymentPaid:      "Paid",
	PaymentCancelled: "Cancelled",
	PaymentRefunded:  "Refunded",
}

var MembershipLabels = map[MembershipLevel]string{
	MembershipNormal: "Member",
	MembershipVIP:    "VIP member",
}

// Label falls back to the raw tag for types the server added later.
func (t ContentType) Label() string {
	if l, ok := ContentTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (s PaymentStatus) Label() string {
	if l, ok := PaymentStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Label treats anything other than vip (including the server's "free") as a
// normal member.
func (m MembershipLevel) Label() string {
	if m == MembershipVIP {
		return MembershipLabels[MembershipVIP]
	}
	return MembershipLabels[MembershipNormal]
}
