package names

var list = []Name{
	{1, "الرحمن", "واسع الرحمة"},
	{2, "الرحيم", "دائم الرحمة"},
	{3, "الملك", "المالك لكل شيء"},
	{4, "القدوس", "المنزه عن النقص"},
	{5, "السلام", "مانح السلام"},
	{6, "المؤمن", "مؤمِّن عباده"},
	{7, "المهيمن", "الرقيب الحافظ"},
	{8, "العزيز", "الغالب القوي"},
	{9, "الجبار", "جابر الكسر"},
	{10, "المتكبر", "العظيم"},
	{11, "الخالق", "المُبدِع"},
	{12, "البارئ", "مُوجد الخلق"},
	{13, "المصور", "مُشكِّل الصور"},
	{14, "الغفار", "كثير المغفرة"},
	{15, "القهار", "الغالب"},
	{16, "الوهاب", "كثير العطاء"},
	{17, "الرزاق", "الرازق"},
	{18, "الفتاح", "فاتح الأبواب"},
	{19, "العليم", "العالِم بكل شيء"},
	{20, "القابض", "يقبض ويمنع"},
	{21, "الباسط", "يبسط ويرزق"},
	{22, "الخافض", "يخفض من يشاء"},
	{23, "الرافع", "يرفع من يشاء"},
	{24, "المعز", "يعز من يشاء"},
	{25, "المذل", "يذل من يشاء"},
	{26, "السميع", "يسمع كل شيء"},
	{27, "البصير", "يرى كل شيء"},
	{28, "الحكم", "الحاكم"},
	{29, "العدل", "العادل"},
	{30, "اللطيف", "الرفيق"},
	{31, "الخبير", "العارف"},
	{32, "الحليم", "لا يعجل بالعقوبة"},
	{33, "العظيم", "العظيم الشأن"},
	{34, "الغفور", "غافر الذنب"},
	{35, "الشكور", "مجازي الخير"},
	{36, "العلي", "عالٍ فوق خلقه"},
	{37, "الكبير", "الكبير"},
	{38, "الحفيظ", "الحافظ"},
	{39, "المقيت", "الكافي"},
	{40, "الحسيب", "المحاسِب"},
	{41, "الجليل", "الجليل"},
	{42, "الكريم", "الكريم"},
	{43, "الرقيب", "المراقب"},
	{44, "المجيب", "مُجيب الدعاء"},
	{45, "الواسع", "واسع الفضل"},
	{46, "الحكيم", "حكيم"},
	{47, "الودود", "محب لعباده"},
	{48, "المجيد", "ذو المجد"},
	{49, "الباعث", "يبعث الخلق"},
	{50, "الشهيد", "الشاهد"},
	{51, "الحق", "الحق"},
	{52, "الوكيل", "الكفيل"},
	{53, "القوي", "القوي"},
	{54, "المتين", "شديد القوة"},
	{55, "الولي", "الناصر"},
	{56, "الحميد", "المحمود"},
	{57, "المحصي", "أحصى كل شيء"},
	{58, "المبدئ", "يبدأ الخلق"},
	{59, "المعيد", "يعيد الخلق"},
	{60, "المحيي", "يحيي"},
	{61, "المميت", "يميت"},
	{62, "الحي", "الحي"},
	{63, "القيوم", "القائم بنفسه"},
	{64, "الواجد", "الغني"},
	{65, "الماجد", "الرفيع"},
	{66, "الواحد", "الواحد"},
	{67, "الأحد", "الفرد"},
	{68, "الصمد", "المقصود"},
	{69, "القادر", "القادر"},
	{70, "المقتدر", "تمام القدرة"},
	{71, "المقدم", "يقدم من يشاء"},
	{72, "المؤخر", "يؤخر من يشاء"},
	{73, "الأول", "بلا بداية"},
	{74, "الآخر", "بلا نهاية"},
	{75, "الظاهر", "الظاهر"},
	{76, "الباطن", "الباطن"},
	{77, "الوالي", "المتولي"},
	{78, "المتعالي", "المتعالي"},
	{79, "البر", "كثير البر"},
	{80, "التواب", "يقبل التوبة"},
	{81, "المنتقم", "ينتقم"},
	{82, "العفو", "يعفو"},
	{83, "الرؤوف", "رؤوف"},
	{84, "مالك الملك", "مالك الملك"},
	{85, "ذو الجلال والإكرام", "صاحب الجلال"},
	{86, "المقسط", "عادل"},
	{87, "الجامع", "يجمع"},
	{88, "الغني", "غني"},
	{89, "المغني", "يغني"},
	{90, "المانع", "يمنع"},
	{91, "الضار", "يضر"},
	{92, "النافع", "ينفع"},
	{93, "النور", "نور السماوات"},
	{94, "الهادي", "يهدي"},
	{95, "البديع", "مبدع"},
	{96, "الباقي", "دائم"},
	{97, "الوارث", "الوارث"},
	{98, "الرشيد", "المرشد"},
	{99, "الصبور", "الصابر"},
}
