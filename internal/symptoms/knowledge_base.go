package symptoms

// defaultKnowledgeBase maps a canonical symptom key to the conditions it can
// indicate, most common first. Keys are lowercase.
var defaultKnowledgeBase = map[string][]string{
	"headache":            {"Migraine", "Tension Headache", "Cluster Headache", "Hypertension"},
	"dizziness":           {"Vertigo", "Low Blood Pressure", "Dehydration", "Anemia"},
	"seizure":             {"Epilepsy", "Brain Injury", "High Fever (Febrile Seizure)", "Meningitis"},
	"numbness":            {"Stroke", "Multiple Sclerosis", "Peripheral Neuropathy", "Vitamin B12 Deficiency"},
	"confusion":           {"Stroke", "Hypoglycemia", "Dementia", "Encephalitis"},
	"memory loss":         {"Dementia", "Alzheimer’s Disease", "Head Injury"},
	"cough":               {"Common Cold", "Bronchitis", "Asthma", "Pneumonia", "COVID-19"},
	"fever":               {"Flu (Influenza)", "Pneumonia", "Malaria", "Typhoid", "COVID-19"},
	"sore throat":         {"Strep Throat", "Pharyngitis", "Tonsillitis", "Common Cold"},
	"shortness of breath": {"Asthma", "COPD", "Heart Failure", "Pneumonia", "Pulmonary Embolism"},
	"wheezing":            {"Asthma", "Bronchitis", "COPD"},
	"stomach pain":        {"Gastritis", "Peptic Ulcer", "Food Poisoning", "Irritable Bowel Syndrome"},
	"nausea":              {"Food Poisoning", "Gastroenteritis", "Pregnancy (Morning Sickness)", "Motion Sickness"},
	"vomiting":            {"Gastroenteritis", "Food Poisoning", "Migraine", "Pregnancy"},
	"diarrhea":            {"Food Poisoning", "Cholera", "Gastroenteritis", "Lactose Intolerance"},
	"constipation":        {"Low Fiber Diet", "Dehydration", "Irritable Bowel Syndrome", "Hypothyroidism"},
	"bloody stool":        {"Hemorrhoids", "Ulcerative Colitis", "Colon Cancer"},
	"joint pain":          {"Arthritis", "Osteoarthritis", "Gout", "Rheumatoid Arthritis"},
	"back pain":           {"Muscle Strain", "Herniated Disc", "Sciatica", "Osteoporosis"},
	"muscle weakness":     {"Myasthenia Gravis", "Muscular Dystrophy", "Electrolyte Imbalance"},
	"chest pain":          {"Angina", "Heart Attack (Myocardial Infarction)", "GERD", "Panic Attack"},
	"palpitations":        {"Arrhythmia", "Hyperthyroidism", "Anxiety Disorder", "Dehydration"},
	"swelling in legs":    {"Heart Failure", "Kidney Disease", "Liver Disease", "Deep Vein Thrombosis"},
	"rash":                {"Allergic Reaction", "Measles", "Eczema", "Chickenpox"},
	"itching":             {"Allergy", "Scabies", "Eczema", "Fungal Infection"},
	"yellow skin":         {"Hepatitis", "Liver Failure", "Jaundice"},
	"fatigue":             {"Anemia", "Thyroid Disorder", "Diabetes", "Chronic Fatigue Syndrome"},
	"weight loss":         {"Diabetes", "Hyperthyroidism", "Cancer", "Malnutrition"},
	"weight gain":         {"Hypothyroidism", "Cushing's Syndrome", "Obesity"},
	"night sweats":        {"Tuberculosis", "Lymphoma", "HIV Infection"},
	"painful urination":   {"Urinary Tract Infection", "Kidney Stones", "Prostatitis"},
	"frequent urination":  {"Diabetes", "Urinary Tract Infection", "Pregnancy"},
	"blood in urine":      {"Kidney Stones", "Bladder Cancer", "Urinary Tract Infection"},
	"irregular periods":   {"Polycystic Ovary Syndrome (PCOS)", "Thyroid Disorder", "Stress"},
	"blurred vision":      {"Cataracts", "Diabetes", "Glaucoma", "Stroke"},
	"red eyes":            {"Conjunctivitis", "Dry Eyes", "Glaucoma"},
	"hearing loss":        {"Ear Infection", "Earwax Blockage", "Noise Damage"},
	"ear pain":            {"Otitis Media", "Ear Infection", "Sinus Infection"},
	"anxiety":             {"Generalized Anxiety Disorder", "Panic Disorder", "Hyperthyroidism"},
	"depression":          {"Major Depressive Disorder", "Hypothyroidism", "Bipolar Disorder"},
	"insomnia":            {"Stress", "Depression", "Anxiety", "Sleep Apnea"},
}

// defaultSynonyms maps colloquial phrasings to knowledge base keys.
var defaultSynonyms = map[string]string{
	"sob":                "shortness of breath",
	"stomach ache":       "stomach pain",
	"abdominal pain":     "stomach pain",
	"feverish":           "fever",
	"high fever":         "fever",
	"throwing up":        "vomiting",
	"poop blood":         "bloody stool",
	"urine blood":        "blood in urine",
	"leg swelling":       "swelling in legs",
	"tired":              "fatigue",
	"weight loss recent": "weight loss",
	"gain weight":        "weight gain",
}
