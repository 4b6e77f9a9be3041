package reporterdb

var defaultDB = New(defaultTables())

// Default returns the built-in abbreviation database: the federal and
// regional case reporters, the federal statute and regulation sources,
// the flagship law journals, and the common court abbreviations. Hosts
// with a fuller corpus construct their own DB via New.
func Default() *DB {
	return defaultDB
}

func defaultTables() Tables {
	return Tables{
		Reporters: []Edition{
			// Supreme Court.
			{Abbrev: "U.S.", Series: "United States Reports", Start: 1790},
			{Abbrev: "S. Ct.", Series: "Supreme Court Reporter", Start: 1882},
			{Abbrev: "L. Ed.", Series: "Lawyers' Edition", Start: 1790, End: 1955},
			{Abbrev: "L. Ed. 2d", Series: "Lawyers' Edition", Start: 1956},

			// Federal courts.
			{Abbrev: "F.", Series: "Federal Reporter", Start: 1880, End: 1924},
			{Abbrev: "F.2d", Series: "Federal Reporter", Start: 1924, End: 1993},
			{Abbrev: "F.3d", Series: "Federal Reporter", Start: 1993, End: 2021},
			{Abbrev: "F.4th", Series: "Federal Reporter", Start: 2021},
			{Abbrev: "F. Supp.", Series: "Federal Supplement", Start: 1932, End: 1998},
			{Abbrev: "F. Supp. 2d", Series: "Federal Supplement", Start: 1998, End: 2014},
			{Abbrev: "F. Supp. 3d", Series: "Federal Supplement", Start: 2014},
			{Abbrev: "F.R.D.", Series: "Federal Rules Decisions", Start: 1940},
			{Abbrev: "B.R.", Series: "Bankruptcy Reporter", Start: 1979},
			{Abbrev: "Fed. Cl.", Series: "Federal Claims Reporter", Start: 1992},
			{Abbrev: "T.C.", Series: "Tax Court Reports", Start: 1942},

			// Regional reporters.
			{Abbrev: "A.", Series: "Atlantic Reporter", Start: 1885, End: 1938},
			{Abbrev: "A.2d", Series: "Atlantic Reporter", Start: 1938, End: 2010},
			{Abbrev: "A.3d", Series: "Atlantic Reporter", Start: 2010},
			{Abbrev: "P.", Series: "Pacific Reporter", Start: 1883, End: 1931},
			{Abbrev: "P.2d", Series: "Pacific Reporter", Start: 1931, End: 2000},
			{Abbrev: "P.3d", Series: "Pacific Reporter", Start: 2000},
			{Abbrev: "N.E.", Series: "North Eastern Reporter", Start: 1885, End: 1936},
			{Abbrev: "N.E.2d", Series: "North Eastern Reporter", Start: 1936, End: 2003},
			{Abbrev: "N.E.3d", Series: "North Eastern Reporter", Start: 2003},
			{Abbrev: "N.W.", Series: "North Western Reporter", Start: 1879, End: 1941},
			{Abbrev: "N.W.2d", Series: "North Western Reporter", Start: 1942},
			{Abbrev: "S.E.", Series: "South Eastern Reporter", Start: 1887, End: 1939},
			{Abbrev: "S.E.2d", Series: "South Eastern Reporter", Start: 1939},
			{Abbrev: "S.W.", Series: "South Western Reporter", Start: 1886, End: 1928},
			{Abbrev: "S.W.2d", Series: "South Western Reporter", Start: 1928, End: 1999},
			{Abbrev: "S.W.3d", Series: "South Western Reporter", Start: 1999},
			{Abbrev: "So.", Series: "Southern Reporter", Start: 1887, End: 1941},
			{Abbrev: "So. 2d", Series: "Southern Reporter", Start: 1941, End: 2008},
			{Abbrev: "So. 3d", Series: "Southern Reporter", Start: 2008},

			// State reporters.
			{Abbrev: "Cal. Rptr.", Series: "California Reporter", Start: 1959, End: 1991},
			{Abbrev: "Cal. Rptr. 2d", Series: "California Reporter", Start: 1991, End: 2003},
			{Abbrev: "Cal. Rptr. 3d", Series: "California Reporter", Start: 2003},
			{Abbrev: "N.Y.S.", Series: "New York Supplement", Start: 1888, End: 1938},
			{Abbrev: "N.Y.S.2d", Series: "New York Supplement", Start: 1938, End: 2016},
			{Abbrev: "N.Y.S.3d", Series: "New York Supplement", Start: 2016},

			// Nominative reporters whose abbreviations collide across
			// states. Year ranges overlap, so most cites stay ambiguous.
			{Abbrev: "Rob.", Series: "Robinson's Virginia Reports", Start: 1842, End: 1844},
			{Abbrev: "Rob.", Series: "Robinson's Louisiana Reports", Start: 1841, End: 1846},
			{Abbrev: "Harr.", Series: "Harrington's Delaware Reports", Start: 1832, End: 1855},
			{Abbrev: "Harr.", Series: "Harrison's New Jersey Reports", Start: 1837, End: 1842},
		},

		Laws: []Law{
			{Abbrev: "U.S.C.", Name: "United States Code", Kind: LawCode},
			{Abbrev: "U.S.C.A.", Name: "United States Code Annotated", Kind: LawCode},
			{Abbrev: "U.S.C.S.", Name: "United States Code Service", Kind: LawCode},
			{Abbrev: "C.F.R.", Name: "Code of Federal Regulations", Kind: LawRegulation},
			{Abbrev: "Fed. Reg.", Name: "Federal Register", Kind: LawRegister},
			{Abbrev: "Stat.", Name: "United States Statutes at Large", Kind: LawSessionLaw},
		},

		Journals: []Journal{
			{Abbrev: "Harv. L. Rev.", Name: "Harvard Law Review"},
			{Abbrev: "Yale L.J.", Name: "Yale Law Journal"},
			{Abbrev: "Stan. L. Rev.", Name: "Stanford Law Review"},
			{Abbrev: "Colum. L. Rev.", Name: "Columbia Law Review"},
			{Abbrev: "Mich. L. Rev.", Name: "Michigan Law Review"},
			{Abbrev: "U. Pa. L. Rev.", Name: "University of Pennsylvania Law Review"},
			{Abbrev: "Geo. L.J.", Name: "Georgetown Law Journal"},
			{Abbrev: "Cornell L. Rev.", Name: "Cornell Law Review"},
			{Abbrev: "Nw. U. L. Rev.", Name: "Northwestern University Law Review"},
			{Abbrev: "Va. L. Rev.", Name: "Virginia Law Review"},
			{Abbrev: "Duke L.J.", Name: "Duke Law Journal"},
			{Abbrev: "Cal. L. Rev.", Name: "California Law Review"},
			{Abbrev: "Tex. L. Rev.", Name: "Texas Law Review"},
			{Abbrev: "B.U. L. Rev.", Name: "Boston University Law Review"},
			{Abbrev: "Notre Dame L. Rev.", Name: "Notre Dame Law Review"},
			{Abbrev: "Vand. L. Rev.", Name: "Vanderbilt Law Review"},
			{Abbrev: "Minn. L. Rev.", Name: "Minnesota Law Review"},
			{Abbrev: "U. Chi. L. Rev.", Name: "University of Chicago Law Review"},
			{Abbrev: "N.Y.U. L. Rev.", Name: "New York University Law Review"},
			{Abbrev: "Wis. L. Rev.", Name: "Wisconsin Law Review"},
		},

		Variants: map[string]string{
			"U. S.":       "U.S.",
			"S.Ct.":       "S. Ct.",
			"L.Ed.":       "L. Ed.",
			"L.Ed.2d":     "L. Ed. 2d",
			"F. 2d":       "F.2d",
			"F. 3d":       "F.3d",
			"F. 4th":      "F.4th",
			"F.Supp.":     "F. Supp.",
			"F.Supp.2d":   "F. Supp. 2d",
			"F.Supp.3d":   "F. Supp. 3d",
			"So.2d":       "So. 2d",
			"So.3d":       "So. 3d",
			"Fed.Reg.":    "Fed. Reg.",
			"Fed. Regis.": "Fed. Reg.",
			"USC":         "U.S.C.",
			"CFR":         "C.F.R.",
		},

		Courts: []string{
			"U.S.",
			"Fed. Cir.",
			"D.C. Cir.",
			"S.D.N.Y.",
			"E.D.N.Y.",
			"N.D. Cal.",
			"C.D. Cal.",
			"D. Mass.",
			"D. Del.",
			"D.N.J.",
			"E.D. Pa.",
			"N.D. Ill.",
			"S.D. Tex.",
			"W.D. Wash.",
			"Bankr. S.D.N.Y.",
			"T.C.",
			"Ct. Cl.",
			"Cal.",
			"N.Y.",
			"Mass.",
			"Pa.",
			"Tex.",
			"Ill.",
			"Fla.",
			"Wash.",
			"Del. Ch.",
		},
	}
}
