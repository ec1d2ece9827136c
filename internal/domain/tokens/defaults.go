package tokens

// standardEasing is the ease-out curve the widgets fall back to.
const standardEasing = "cubic-bezier(.165, .84, .44, 1)"

// StaticDefaults is the last fallback layer of the token store: values baked
// into the widgets, used when neither an override nor a resolved value
// exists for a name.
func StaticDefaults() Set {
	return Set{
		TargetArrow.PresetName():        Text("moderate"),
		TargetArrow.Stiffness():         Number(200),
		TargetArrow.Damping():           Number(20),
		TargetArrow.Mass():              Number(1),
		TargetContent.PresetName():      Text("moderate"),
		TargetContent.Stiffness():       Number(200),
		TargetContent.Damping():         Number(20),
		TargetContent.Mass():            Number(1),
		AccordionTransitionDuration:     Text("300ms"),
		AccordionTransitionEasing:       Text(standardEasing),
		AccordionAnimationDuration:      Text("300"),
		AccordionContentOpacityDuration: Text("200ms"),
		AccordionContentOpacityEasing:   Text(standardEasing),
		SliderTransitionDuration:        Text("250ms"),
		SliderTransitionEasing:          Text(standardEasing),
	}
}
