package catalog

// SampleItems returns the fixture cart in a freshly allocated slice.
func SampleItems() []CartItem {
	return []CartItem{
		MustItem("drone", Electronics, 4999, 1),
		MustItem("vr-headset", Electronics, 2299, 1),
		MustItem("plain-shirt", Clothing, 409, 3),
		MustItem("jeans", Clothing, 528, 1),
		MustItem("treadmill", Sports, 2699, 1),
		MustItem("thinking-in-java", Books, 79.8, 1),
		MustItem("core-java", Books, 149, 1),
		MustItem("algorithms", Books, 78.2, 1),
		MustItem("tensorflow-guide", Books, 85.1, 1),
	}
}
