package catalog

// builtinPhotos lists common ID-photo, passport and visa sizes.
// Label convention: "<short-name> (<W>×<H>mm)"; the short name must not contain
// spaces because it becomes part of exported file names.
var builtinPhotos = []PhotoSpec{
	// Standard ID photo sizes
	{ID: "1inch", Size: Dimension{2.5, 3.5}, Label: "1-inch (25×35mm)"},
	{ID: "large1inch", Size: Dimension{3.3, 4.8}, Label: "Large-1-inch (33×48mm)"},
	{ID: "small1inch", Size: Dimension{2.2, 3.2}, Label: "Small-1-inch (22×32mm)"},
	{ID: "color_large1inch", Size: Dimension{4.0, 5.5}, Label: "Color-large-1-inch (40×55mm)"},
	{ID: "color_small1inch", Size: Dimension{2.7, 3.8}, Label: "Color-small-1-inch (27×38mm)"},
	{ID: "bw_large1inch", Size: Dimension{3.3, 4.8}, Label: "BW-large-1-inch (33×48mm)"},
	{ID: "bw_small1inch", Size: Dimension{2.2, 3.2}, Label: "BW-small-1-inch (22×32mm)"},

	// 2-inch photos
	{ID: "2inch", Size: Dimension{3.8, 5.1}, Label: "2-inch (38×51mm)"},
	{ID: "large2inch", Size: Dimension{3.5, 5.0}, Label: "Large-2-inch (35×50mm)"},
	{ID: "small2inch", Size: Dimension{3.5, 4.5}, Label: "Small-2-inch (35×45mm)"},
	{ID: "large2inch_v2", Size: Dimension{3.5, 5.3}, Label: "Large-2-inch-v2 (35×53mm)"},

	// Identity documents
	{ID: "id_card", Size: Dimension{2.2, 3.2}, Label: "ID-card (22×32mm)"},
	{ID: "id_card_v2", Size: Dimension{2.6, 3.2}, Label: "ID-card-v2 (26×32mm)"},
	{ID: "driver_license", Size: Dimension{2.2, 3.2}, Label: "Driver-license (22×32mm)"},
	{ID: "cn_passport", Size: Dimension{3.3, 4.8}, Label: "CN-passport (33×48mm)"},
	{ID: "us_visa", Size: Dimension{5.1, 5.1}, Label: "US-visa (51×51mm)"},
	{ID: "us_imm_visa", Size: Dimension{3.5, 4.0}, Label: "US-immigrant-visa (35×40mm)"},
	{ID: "ca_visa", Size: Dimension{3.5, 4.5}, Label: "CA-visa (35×45mm)"},
	{ID: "uk_visa", Size: Dimension{3.5, 4.5}, Label: "UK-visa (35×45mm)"},
	{ID: "au_visa", Size: Dimension{3.5, 4.5}, Label: "AU-visa (35×45mm)"},
	{ID: "jp_visa", Size: Dimension{4.5, 4.5}, Label: "JP-visa (45×45mm)"},
	{ID: "hk_travel_permit", Size: Dimension{3.3, 4.8}, Label: "HK-Macau-travel-permit (33×48mm)"},
	{ID: "hk_passport", Size: Dimension{4.0, 5.0}, Label: "HKSAR-passport (40×50mm)"},
	{ID: "general_id", Size: Dimension{3.3, 4.8}, Label: "General-ID (33×48mm)"},
	{ID: "vehicle_license", Size: Dimension{6.0, 8.8}, Label: "Vehicle-license (60×88mm)"},
	{ID: "graduation", Size: Dimension{3.3, 4.8}, Label: "Graduation (33×48mm)"},
	{ID: "schengen_visa", Size: Dimension{3.0, 4.0}, Label: "Schengen-visa (30×40mm)"},
	{ID: "judicial_exam", Size: Dimension{3.2, 4.6}, Label: "Judicial-exam (32×46mm)"},
	{ID: "arg_visa", Size: Dimension{4.0, 4.0}, Label: "AR-visa (40×40mm)"},
	{ID: "it_visa", Size: Dimension{3.4, 4.0}, Label: "IT-visa (34×40mm)"},
	{ID: "jp_exam", Size: Dimension{2.4, 3.0}, Label: "JP-exam (24×30mm)"},
	{ID: "ca_visa_b", Size: Dimension{5.0, 7.0}, Label: "CA-visa-B (50×70mm)"},
	{ID: "marriage_cert", Size: Dimension{6.0, 4.0}, Label: "Marriage-certificate (60×40mm)"},
	{ID: "marriage_reg_2022", Size: Dimension{5.3, 3.5}, Label: "Marriage-registration-2022 (53×35mm)"},
	{ID: "th_visa", Size: Dimension{4.0, 6.0}, Label: "TH-visa-on-arrival (40×60mm)"},
	{ID: "size_3.5x3.0", Size: Dimension{3.5, 3.0}, Label: "3.5x3.0cm (35×30mm)"},
	{ID: "size_5.0x5.5", Size: Dimension{5.0, 5.5}, Label: "5.0x5.5cm (50×55mm)"},
	{ID: "half_body_2inch", Size: Dimension{4.2, 4.7}, Label: "2-inch-half-body (42×47mm)"},
}

// builtinPapers lists photo-print and office paper sizes in their nominal
// orientation. Photo papers are listed landscape, office papers portrait.
var builtinPapers = []PaperSpec{
	// Photo print sizes
	{ID: "5inch", Size: Dimension{12.7, 8.9}, Label: "5-inch-3R (127×89mm)"},
	{ID: "6inch", Size: Dimension{15.2, 10.2}, Label: "6-inch-4R (152×102mm)"},
	{ID: "7inch", Size: Dimension{17.8, 12.7}, Label: "7-inch-5R (178×127mm)"},
	{ID: "8inch", Size: Dimension{20.3, 15.2}, Label: "8-inch-6R (203×152mm)"},
	{ID: "10inch", Size: Dimension{25.4, 20.3}, Label: "10-inch-8R (254×203mm)"},
	{ID: "12inch", Size: Dimension{25.4, 30.48}, Label: "12-inch (254×305mm)"},
	{ID: "canon_4x6", Size: Dimension{13.35, 8.9}, Label: "Canon-4x6 (133.5×89mm)"},
	{ID: "postcard", Size: Dimension{14.8, 10.0}, Label: "Postcard (148×100mm)"},
	{ID: "hagaki", Size: Dimension{10.0, 14.8}, Label: "Hagaki (100×148mm)"},

	// Office paper sizes
	{ID: "a3", Size: Dimension{29.7, 42.0}, Label: "A3 (297×420mm)"},
	{ID: "a4", Size: Dimension{21.0, 29.7}, Label: "A4 (210×297mm)"},
	{ID: "a5", Size: Dimension{14.8, 21.0}, Label: "A5 (148×210mm)"},
	{ID: "a6", Size: Dimension{10.5, 14.8}, Label: "A6 (105×148mm)"},
	{ID: "b3", Size: Dimension{50.0, 70.7}, Label: "B3 (500×707mm)"},
	{ID: "b4", Size: Dimension{25.0, 35.3}, Label: "B4 (250×353mm)"},
	{ID: "b5", Size: Dimension{17.6, 25.0}, Label: "B5 (176×250mm)"},
	{ID: "letter", Size: Dimension{21.59, 27.94}, Label: "Letter (216×279mm)"},
}
