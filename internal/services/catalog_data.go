package services

import dm "wayfarer/internal/models/domain_models"

// builtinExperiences is the Rome dataset shipped with the binary. It is also
// what `planctl seed` writes into Postgres.
func builtinExperiences() []dm.ExperienceItem {
	return []dm.ExperienceItem{
		{
			ID:            "hotel_monti",
			Name:          "Hotel Monti",
			Category:      dm.CategoryNone,
			Description:   "Base for the trip, a short walk from the Colosseum.",
			Location:      "Via Cavour 40, Monti",
			DurationLabel: "",
			Rating:        4.2,
			Tags:          []string{"stay"},
			Color:         "#6b7280",
			Lat:           dm.Float(41.8958),
			Lng:           dm.Float(12.4912),
		},
		{
			ID:            "colosseum1",
			Name:          "Colosseum Underground Tour",
			Category:      dm.CategoryAttraction,
			Description:   "Guided visit of the arena floor and the hypogeum.",
			Location:      "Piazza del Colosseo",
			Price:         45,
			DurationLabel: "120 mins",
			Rating:        4.8,
			Tags:          []string{"history", "guided", "skip-the-line"},
			Lat:           dm.Float(41.8902),
			Lng:           dm.Float(12.4922),
			Website:       "https://colosseo.it",
			Booking:       "https://ticketing.colosseo.it",
			Info: &dm.ExperienceInfo{
				Highlights: []string{"Arena floor", "Hypogeum tunnels", "Third tier view"},
				BestTime:   "First slot at 09:00, before the tour groups",
				Tips:       []string{"Bring ID matching the ticket", "No large bags"},
				Nearby:     []string{"forum_walk", "palatine_hill"},
			},
		},
		{
			ID:            "forum_walk",
			Name:          "Roman Forum & Palatine Walk",
			Category:      dm.CategoryActivity,
			Description:   "Self-paced walk through the Forum ruins up to the Palatine.",
			Location:      "Via della Salara Vecchia",
			Price:         18,
			DurationLabel: "90 mins",
			Rating:        4.6,
			Tags:          []string{"history", "outdoor", "walking"},
			Lat:           dm.Float(41.8925),
			Lng:           dm.Float(12.4853),
			Info: &dm.ExperienceInfo{
				Highlights: []string{"Via Sacra", "House of the Vestals"},
				BestTime:   "Late morning",
				Tips:       []string{"Wear comfortable shoes", "Little shade, carry water"},
			},
		},
		{
			ID:            "palatine_hill",
			Name:          "Palatine Hill Gardens",
			Category:      dm.CategoryAttraction,
			Description:   "Imperial palaces and the Farnese gardens above the Circus Maximus.",
			Location:      "Via di San Gregorio 30",
			Price:         0,
			DurationLabel: "60 mins",
			Rating:        4.5,
			Tags:          []string{"history", "gardens"},
			Lat:           dm.Float(41.8892),
			Lng:           dm.Float(12.4875),
		},
		{
			ID:            "trattoria1",
			Name:          "Trattoria da Enzo",
			Category:      dm.CategoryDining,
			Description:   "Roman classics: cacio e pepe, carbonara, carciofi.",
			Location:      "Via dei Vascellari 29, Trastevere",
			Price:         35,
			DurationLabel: "75 mins",
			Rating:        4.7,
			Tags:          []string{"roman", "lunch", "reservation"},
			Lat:           dm.Float(41.8886),
			Lng:           dm.Float(12.4770),
			Phone:         "+39 06 581 8355",
		},
		{
			ID:            "pantheon1",
			Name:          "Pantheon",
			Category:      dm.CategoryAttraction,
			Description:   "The best-preserved temple of ancient Rome and its open oculus.",
			Location:      "Piazza della Rotonda",
			Price:         5,
			DurationLabel: "45 mins",
			Rating:        4.8,
			Tags:          []string{"history", "architecture"},
			Lat:           dm.Float(41.8986),
			Lng:           dm.Float(12.4769),
		},
		{
			ID:            "trevi_night",
			Name:          "Trevi & Spanish Steps by Night",
			Category:      dm.CategoryActivity,
			Description:   "Evening stroll past the lit fountains with a local guide.",
			Location:      "Piazza di Trevi",
			Price:         25,
			DurationLabel: "120 mins",
			Rating:        4.5,
			Tags:          []string{"night", "guided", "walking"},
			Lat:           dm.Float(41.9009),
			Lng:           dm.Float(12.4833),
		},
		{
			ID:            "vatican1",
			Name:          "Vatican Museums & Sistine Chapel",
			Category:      dm.CategoryAttraction,
			Description:   "Early-entry tour of the museums, Raphael rooms and the Sistine Chapel.",
			Location:      "Viale Vaticano",
			Price:         65,
			DurationLabel: "180 mins",
			Rating:        4.9,
			Tags:          []string{"art", "guided", "early-entry"},
			Lat:           dm.Float(41.9065),
			Lng:           dm.Float(12.4536),
			Website:       "https://www.museivaticani.va",
			Info: &dm.ExperienceInfo{
				Highlights: []string{"Gallery of Maps", "Raphael Rooms", "Sistine Chapel"},
				BestTime:   "Early entry at 07:30",
				Tips:       []string{"Shoulders and knees covered"},
				Nearby:     []string{"st_peters"},
			},
		},
		{
			ID:            "st_peters",
			Name:          "St. Peter's Dome Climb",
			Category:      dm.CategoryActivity,
			Description:   "551 steps to the top of Michelangelo's dome.",
			Location:      "Piazza San Pietro",
			Price:         10,
			DurationLabel: "60 mins",
			Rating:        4.7,
			Tags:          []string{"view", "climb"},
			Lat:           dm.Float(41.9022),
			Lng:           dm.Float(12.4539),
		},
		{
			ID:            "pasta_class",
			Name:          "Fresh Pasta Cooking Class",
			Category:      dm.CategoryActivity,
			Description:   "Make fettuccine and ravioli from scratch, then eat them.",
			Location:      "Via della Lungaretta 96, Trastevere",
			Price:         70,
			DurationLabel: "150 mins",
			Rating:        4.9,
			Tags:          []string{"food", "hands-on", "small-group"},
			Lat:           dm.Float(41.8893),
			Lng:           dm.Float(12.4699),
		},
		{
			ID:            "massage_trastevere",
			Name:          "Trastevere Day Spa Massage",
			Category:      dm.CategoryService,
			Description:   "Sixty minutes of deep-tissue massage after a day on cobblestones.",
			Location:      "Via della Scala 12, Trastevere",
			Price:         80,
			DurationLabel: "60 mins",
			Rating:        4.6,
			Tags:          []string{"relax", "massage"},
			Lat:           dm.Float(41.8915),
			Lng:           dm.Float(12.4681),
		},
		{
			ID:            "gelato_tour",
			Name:          "Trastevere Gelato & Street Food",
			Category:      dm.CategoryDining,
			Description:   "Supplì, pizza al taglio and three gelaterie.",
			Location:      "Piazza di Santa Maria in Trastevere",
			Price:         40,
			DurationLabel: "120 mins",
			Rating:        4.7,
			Tags:          []string{"food", "evening", "walking"},
			Lat:           dm.Float(41.8896),
			Lng:           dm.Float(12.4703),
		},
		{
			ID:            "borghese1",
			Name:          "Borghese Gallery",
			Category:      dm.CategoryAttraction,
			Description:   "Bernini and Caravaggio in the villa's timed-entry gallery.",
			Location:      "Piazzale Scipione Borghese 5",
			Price:         22,
			DurationLabel: "120 mins",
			Rating:        4.8,
			Tags:          []string{"art", "timed-entry"},
			Lat:           dm.Float(41.9142),
			Lng:           dm.Float(12.4921),
			Booking:       "https://www.galleriaborghese.it",
		},
		{
			ID:            "escape_rome",
			Name:          "Escape Room: Nero's Secret",
			Category:      dm.CategoryScript,
			Description:   "Sixty-minute escape room set in the Domus Aurea.",
			Location:      "Via Labicana 8",
			Price:         28,
			DurationLabel: "60 mins",
			Rating:        4.4,
			Tags:          []string{"puzzle", "team"},
			Lat:           dm.Float(41.8888),
			Lng:           dm.Float(12.4990),
		},
		{
			ID:            "murder_mystery",
			Name:          "Murder at the Senate Dinner Game",
			Category:      dm.CategoryScript,
			Description:   "Scripted role-play dinner: find who stabbed Caesar this time.",
			Location:      "Via del Governo Vecchio 18",
			Price:         55,
			DurationLabel: "180 mins",
			Rating:        4.3,
			Tags:          []string{"role-play", "dinner", "evening"},
			Lat:           dm.Float(41.8981),
			Lng:           dm.Float(12.4698),
		},
		{
			ID:            "spa1",
			Name:          "Thermae Wellness Circuit",
			Category:      dm.CategoryService,
			Description:   "Roman-bath inspired circuit: caldarium, tepidarium, frigidarium.",
			Location:      "Via Veneto 155",
			Price:         120,
			DurationLabel: "150 mins",
			Rating:        4.7,
			Tags:          []string{"relax", "spa", "thermal"},
			Lat:           dm.Float(41.9079),
			Lng:           dm.Float(12.4881),
		},
		{
			ID:            "vespa_tour",
			Name:          "Vespa Sidecar Tour",
			Category:      dm.CategoryActivity,
			Description:   "Three hours around the seven hills in a vintage sidecar.",
			Location:      "Legacy flat map: start at Porta Pia",
			Price:         95,
			DurationLabel: "180 mins",
			Rating:        4.6,
			Tags:          []string{"ride", "guided"},
			X:             dm.Float(62),
			Y:             dm.Float(18),
		},
	}
}

// templatePlan is the fixed 3-day assistant route. hotel_breakfast has no
// catalog entry: it is display-only and never addable.
func templatePlan() []dm.DayRoute {
	return []dm.DayRoute{
		{
			Day:             1,
			Title:           "Ancient Rome",
			StartLocation:   "Hotel Monti",
			EndLocation:     "Trevi Fountain",
			TotalDuration:   "10 hours",
			WalkingDistance: "6.2 km",
			Activities: []dm.RouteActivity{
				{Time: "08:00", Label: "Breakfast at the hotel", Emoji: "☕", ID: "hotel_breakfast", Location: "Hotel Monti", DurationLabel: "45 mins"},
				{Time: "09:00", Label: "Colosseum Underground Tour", Emoji: "🏟️", ID: "colosseum1", Location: "Piazza del Colosseo", DurationLabel: "120 mins", Price: dm.Float(45), Website: "https://colosseo.it"},
				{Time: "11:30", Label: "Roman Forum & Palatine Walk", Emoji: "🏛️", ID: "forum_walk", Location: "Via della Salara Vecchia", DurationLabel: "90 mins", Price: dm.Float(18)},
				{Time: "13:30", Label: "Lunch at Trattoria da Enzo", Emoji: "🍝", ID: "trattoria1", Location: "Trastevere", DurationLabel: "75 mins", Price: dm.Float(35)},
				{Time: "16:00", Label: "Pantheon", Emoji: "⛪", ID: "pantheon1", Location: "Piazza della Rotonda", DurationLabel: "45 mins", Price: dm.Float(5)},
				{Time: "20:00", Label: "Trevi & Spanish Steps by Night", Emoji: "⛲", ID: "trevi_night", Location: "Piazza di Trevi", DurationLabel: "120 mins", Price: dm.Float(25)},
			},
		},
		{
			Day:             2,
			Title:           "Vatican & Trastevere",
			StartLocation:   "Hotel Monti",
			EndLocation:     "Trastevere",
			TotalDuration:   "11 hours",
			WalkingDistance: "7.8 km",
			Activities: []dm.RouteActivity{
				{Time: "08:30", Label: "Vatican Museums & Sistine Chapel", Emoji: "🎨", ID: "vatican1", Location: "Viale Vaticano", DurationLabel: "180 mins", Price: dm.Float(65), Website: "https://www.museivaticani.va"},
				{Time: "12:00", Label: "St. Peter's Dome Climb", Emoji: "⛪", ID: "st_peters", Location: "Piazza San Pietro", DurationLabel: "60 mins", Price: dm.Float(10)},
				{Time: "14:00", Label: "Fresh Pasta Cooking Class", Emoji: "👩‍🍳", ID: "pasta_class", Location: "Trastevere", DurationLabel: "150 mins", Price: dm.Float(70)},
				{Time: "17:00", Label: "Day Spa Massage", Emoji: "💆", ID: "massage_trastevere", Location: "Trastevere", DurationLabel: "60 mins", Price: dm.Float(80)},
				{Time: "19:00", Label: "Gelato & Street Food", Emoji: "🍨", ID: "gelato_tour", Location: "Santa Maria in Trastevere", DurationLabel: "120 mins", Price: dm.Float(40)},
			},
		},
		{
			Day:             3,
			Title:           "Villas & Mysteries",
			StartLocation:   "Hotel Monti",
			EndLocation:     "Piazza Navona",
			TotalDuration:   "10 hours",
			WalkingDistance: "5.1 km",
			Activities: []dm.RouteActivity{
				{Time: "10:00", Label: "Borghese Gallery", Emoji: "🖼️", ID: "borghese1", Location: "Villa Borghese", DurationLabel: "120 mins", Price: dm.Float(22)},
				{Time: "13:30", Label: "Escape Room: Nero's Secret", Emoji: "🔐", ID: "escape_rome", Location: "Via Labicana", DurationLabel: "60 mins", Price: dm.Float(28)},
				{Time: "16:00", Label: "Thermae Wellness Circuit", Emoji: "♨️", ID: "spa1", Location: "Via Veneto", DurationLabel: "150 mins", Price: dm.Float(120)},
				{Time: "20:00", Label: "Murder at the Senate Dinner Game", Emoji: "🗡️", ID: "murder_mystery", Location: "Via del Governo Vecchio", DurationLabel: "180 mins", Price: dm.Float(55)},
			},
		},
	}
}
